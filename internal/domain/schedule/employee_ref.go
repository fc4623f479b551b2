package schedule

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// EmployeeRef is an employee reference as a data source delivered it: a bare id string,
// a populated employee object carrying "_id", or an extended-JSON {"$oid": "..."} wrapper.
type EmployeeRef json.RawMessage

// RefFromID builds a reference holding a plain string id.
func RefFromID(id string) EmployeeRef {
	b, _ := json.Marshal(id)
	return EmployeeRef(b)
}

func (r EmployeeRef) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

func (r *EmployeeRef) UnmarshalJSON(data []byte) error {
	*r = append((*r)[0:0], data...)
	return nil
}

// NormalizeEmployeeID resolves any supported reference shape to a string id.
// Failures wrap ErrEmployeeIDNormalization with the reason.
func NormalizeEmployeeID(ref EmployeeRef) (string, error) {
	raw := bytes.TrimSpace(ref)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", fmt.Errorf("%w: reference is empty", ErrEmployeeIDNormalization)
	}

	switch raw[0] {
	case '"':
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return "", fmt.Errorf("%w: %v", ErrEmployeeIDNormalization, err)
		}
		id = strings.TrimSpace(id)
		if id == "" {
			return "", fmt.Errorf("%w: id string is blank", ErrEmployeeIDNormalization)
		}
		return id, nil
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return "", fmt.Errorf("%w: %v", ErrEmployeeIDNormalization, err)
		}
		if oid, ok := obj["$oid"]; ok {
			return normalizeObjectID(oid)
		}
		if inner, ok := obj["_id"]; ok {
			// Populated documents may carry either a string id or an {$oid} wrapper.
			return NormalizeEmployeeID(EmployeeRef(inner))
		}
		return "", fmt.Errorf("%w: object has neither _id nor $oid", ErrEmployeeIDNormalization)
	default:
		return "", fmt.Errorf("%w: unsupported reference shape %s", ErrEmployeeIDNormalization, truncate(raw))
	}
}

// DisplayName returns the name carried by a populated reference, if any.
func (r EmployeeRef) DisplayName() string {
	raw := bytes.TrimSpace(r)
	if len(raw) == 0 || raw[0] != '{' {
		return ""
	}
	var obj struct {
		Name     string `json:"name"`
		FullName string `json:"full_name"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}
	if obj.Name != "" {
		return obj.Name
	}
	return obj.FullName
}

func normalizeObjectID(raw json.RawMessage) (string, error) {
	var hex string
	if err := json.Unmarshal(raw, &hex); err != nil {
		return "", fmt.Errorf("%w: $oid is not a string", ErrEmployeeIDNormalization)
	}
	oid, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEmployeeIDNormalization, err)
	}
	return oid.Hex(), nil
}

func truncate(b []byte) string {
	const max = 32
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
