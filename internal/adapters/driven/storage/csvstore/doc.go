// Package csvstore writes collected records as one CSV file per community.
//
// Files are named <community>_data_<start>_to_<end>.csv and carry a header
// row with domain.Columns followed by one row per record. Fields are
// quoted per RFC 4180, so commas, quotes and newlines in post and comment
// bodies survive a round trip. Output is UTF-8 without a byte order mark.
package csvstore
