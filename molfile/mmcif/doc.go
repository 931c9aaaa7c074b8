// Package mmcif reads coordinates and a little descriptive information
// from files in mmCIF format.
//
// What we do not want is most of the file. The first character on a
// line is decisive.
//  - "_" is a data item, "_category.item value".
//  - "loop_" starts a table. The following "_" lines are column names
//    and the lines after that are rows.
//  - "data_" starts a data block. We read all blocks as if they were one.
//  - ";" at the start of a line opens or closes a text field.
// The one table we read carefully is _atom_site. Its rows are
// split at white space and matching quotes, one row per line, and
// columns are found by name, so the order in the file does not matter.
// A few other tables are kept whole so that data items written as
// a one row loop can be found.
//
// If the atom_site table gave nothing, we take the first three numbers
// in a row on each line as coordinates. This rescues some badly broken
// exports and is wrong for anything else.
//
// Notes about the format.
// A question mark, ?, means a missing value.
// A dot, ., means not appropriate or deliberately left out.
// The chain a biologist expects is auth_asym_id. label_asym_id is the
// alternative.
package mmcif
