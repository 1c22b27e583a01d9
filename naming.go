package xlreshape

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// maxFileNameRunes bounds the stem returned by SafeFileName.
const maxFileNameRunes = 200

// maxSheetNameRunes is the longest sheet name a workbook accepts.
const maxSheetNameRunes = 31

// windowsReserved are device names Windows refuses as file stems.
var windowsReserved = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// SafeFileName sanitizes a key for use as a file stem. It NFC-normalizes the
// text, replaces the characters forbidden by common file systems (/\:*?"<>|)
// and control characters with underscore, trims trailing dots and spaces, and
// truncates to 200 runes. An empty result becomes "_".
func SafeFileName(name string) string {
	runes := []rune(norm.NFC.String(name))
	for i, r := range runes {
		if strings.ContainsRune(`/\:*?"<>|`, r) || unicode.IsControl(r) {
			runes[i] = '_'
		}
	}
	if len(runes) > maxFileNameRunes {
		runes = runes[:maxFileNameRunes]
	}
	s := strings.TrimRight(strings.TrimSpace(string(runes)), ". ")
	if s == "" {
		return "_"
	}
	if windowsReserved[strings.ToUpper(s)] {
		s = "_" + s
	}
	return s
}

// uniqueSheetName returns name, or name followed by the smallest number that
// makes it unique, when used already holds name. Sheet names are compared
// case-insensitively, as spreadsheet applications do.
func uniqueSheetName(name string, used map[string]bool) string {
	candidate := name
	for n := 1; used[strings.ToLower(candidate)]; n++ {
		suffix := strconv.Itoa(n)
		stem := []rune(name)
		if len(stem)+len(suffix) > maxSheetNameRunes {
			stem = stem[:maxSheetNameRunes-len(suffix)]
		}
		candidate = string(stem) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}
