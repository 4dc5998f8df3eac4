package configloader

import (
	"strings"

	"github.com/yaklabco/excmd/pkg/exerr"
)

// kindCodes maps Vim error codes to the kinds they are raised for, so that
// the kinds section can be keyed either way.
//
//nolint:gochecknoglobals // Read-only lookup table.
var kindCodes = map[string]exerr.Kind{
	"E492": exerr.KindUnknownCommand,
	"E488": exerr.KindTrailingCharacters,
	"E14":  exerr.KindInvalidRange,
	"E16":  exerr.KindInvalidAddress,
	"E20":  exerr.KindMarkNotSet,
	"E486": exerr.KindPatternNotFound,
	"E384": exerr.KindPatternNotFound,
	"E385": exerr.KindPatternNotFound,
	"E35":  exerr.KindNoPreviousPattern,
	"E474": exerr.KindInvalidArgument,
	"E147": exerr.KindInvalidArgument,
	"E477": exerr.KindNoBangAllowed,
	"E481": exerr.KindNoRangeAllowed,
}

// kindGroups maps group names to the kinds they contain.
// A group can be used in configuration to configure several kinds at once.
//
//nolint:gochecknoglobals // Read-only lookup table.
var kindGroups = map[string][]exerr.Kind{
	"syntax": {
		exerr.KindScan,
		exerr.KindUnknownCommand,
		exerr.KindTrailingCharacters,
		exerr.KindInvalidArgument,
		exerr.KindNoBangAllowed,
		exerr.KindNoRangeAllowed,
	},
	"resolve": {
		exerr.KindInvalidRange,
		exerr.KindInvalidAddress,
		exerr.KindMarkNotSet,
		exerr.KindPatternNotFound,
		exerr.KindNoPreviousPattern,
	},
}

// NormalizeKindKey converts a kind name, Vim error code or snake_case spelling
// to the canonical kind name. Returns empty string if the key is not recognized.
func NormalizeKindKey(key string) string {
	if kind, ok := kindCodes[strings.ToUpper(strings.TrimSpace(key))]; ok {
		return kind.String()
	}

	if kind, ok := exerr.ParseKind(strings.ReplaceAll(key, "_", "-")); ok {
		return kind.String()
	}

	return ""
}

// IsKindGroup returns true if the key is a recognized group name.
func IsKindGroup(key string) bool {
	_, ok := kindGroups[key]
	return ok
}

// GetGroupKinds returns the kind names in a group.
// Returns nil if the group is not recognized.
func GetGroupKinds(group string) []string {
	kinds, ok := kindGroups[group]
	if !ok {
		return nil
	}

	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = kind.String()
	}
	return names
}
