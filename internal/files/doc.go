// Package files discovers uploaded workbooks on disk. The CLIs accept either
// an explicit workbook path or a directory, in which case the most recent
// workbook is processed.
package files
