package domain

import (
	"strconv"
)

// EntityID - стабильный идентификатор сущности на всё время её жизни.
// Выдается симулятором последовательно, 0 означает "нет сущности".
type EntityID uint64

const NoEntity EntityID = 0

// MarshalJSON сериализует ID в строку, так как JS теряет точность для больших int64
func (id EntityID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

// UnmarshalJSON парсит строку или число из JSON
func (id *EntityID) UnmarshalJSON(data []byte) error {
	if len(data) > 1 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	val, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return err
	}
	*id = EntityID(val)
	return nil
}

// ParseEntityID is the inverse of String without the '#' prefix requirement.
func ParseEntityID(s string) (EntityID, bool) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	val, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return NoEntity, false
	}
	return EntityID(val), true
}

// String для логов: #42
func (id EntityID) String() string {
	return "#" + strconv.FormatUint(uint64(id), 10)
}
