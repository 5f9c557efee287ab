package gamedata

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samdwyer/hexref/internal/jsonvalue"
)

// DefaultCategory is assigned to moves that do not name a category.
const DefaultCategory = "Moves"

// CategoryKey is the move field holding its category.
const CategoryKey = "category"

// MoveFile is one move file to load, attributed to the role that first
// referenced it.
type MoveFile struct {
	Path string // Content path, e.g. "data/moves/pilot.json"
	Role string // Role name from the availability map
	Name string // Published dataset name, e.g. "PilotMoves"
}

// MoveFiles lists the distinct move files referenced by the map. Roles are
// visited in document order; a role's _movesFile comes before its
// _movesFiles entries. A path referenced more than once is listed only for
// its first reference.
func (m *AvailabilityMap) MoveFiles() []MoveFile {
	var files []MoveFile
	seen := make(map[string]bool)

	for _, role := range m.Roles() {
		if path := role.MovesFile(); path != "" && !seen[path] {
			seen[path] = true
			files = append(files, MoveFile{Path: path, Role: role.Name, Name: PublishedName(role.Name)})
		}

		for i, path := range role.MovesFiles() {
			if path == "" || seen[path] {
				continue
			}
			seen[path] = true
			files = append(files, MoveFile{Path: path, Role: role.Name, Name: ModuleMovesName(role.Name, i)})
		}
	}
	return files
}

// PublishedName returns the dataset name for a role's primary move file:
// "Lord Commander" becomes "LordCommanderMoves".
func PublishedName(role string) string {
	return roleIdentifier(role) + "Moves"
}

// ModuleMovesName returns the dataset name for the i-th entry of a role's
// _movesFiles list, e.g. "PilotModuleMoves1".
func ModuleMovesName(role string, i int) string {
	return roleIdentifier(role) + "ModuleMoves" + strconv.Itoa(i)
}

func roleIdentifier(role string) string {
	var b strings.Builder
	for _, part := range strings.Split(role, " ") {
		r, size := utf8.DecodeRuneInString(part)
		if size == 0 {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(part[size:])
	}
	return b.String()
}

// NormalizeMove returns the move with a category filled in. A category that
// is missing, null or empty becomes DefaultCategory; moves that already have
// one are returned unchanged. The input is never modified.
func NormalizeMove(move *jsonvalue.Object) *jsonvalue.Object {
	if v, ok := move.Get(CategoryKey); ok && !jsonvalue.IsNull(v) {
		if s, isString := v.(jsonvalue.String); !isString || s != "" {
			return move
		}
	}
	out := move.Clone()
	out.Set(CategoryKey, jsonvalue.String(DefaultCategory))
	return out
}
