package todo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is a server-assigned item identity. The zero value marks an item that
// only exists locally.
type ID string

// IsZero reports whether the identity is absent.
func (id ID) IsZero() bool {
	return strings.TrimSpace(string(id)) == ""
}

func (id ID) String() string {
	return string(id)
}

// MarshalJSON writes numeric identities as JSON numbers so they round-trip
// against servers that assign integer keys.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(strconv.FormatInt(n, 10)), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts a JSON number, string or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Item is a single to-do entry.
type Item struct {
	ID        ID     `json:"id,omitempty"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// UnmarshalJSON also accepts "_id" as the identity field.
func (it *Item) UnmarshalJSON(data []byte) error {
	type plain Item
	var aux struct {
		plain
		AltID ID `json:"_id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*it = Item(aux.plain)
	if it.ID.IsZero() {
		it.ID = aux.AltID
	}
	return nil
}

// HasIdentity reports whether the item is known to a persistence gateway.
func (it Item) HasIdentity() bool {
	return !it.ID.IsZero()
}

// Fields is the mutable part of an item, sent as the body of create and
// update requests.
type Fields struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Fields returns the item's mutable fields.
func (it Item) Fields() Fields {
	return Fields{Text: it.Text, Completed: it.Completed}
}

// Blank reports whether text is empty once surrounding whitespace is removed.
func Blank(text string) bool {
	return strings.TrimSpace(text) == ""
}
