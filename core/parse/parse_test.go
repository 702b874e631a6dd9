package parse

import (
	"testing"
)

type person struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// TestStringAs_Primitives verifies direct conversion for primitive targets.
func TestStringAs_Primitives(t *testing.T) {
	if got, err := StringAs[string]("hello"); err != nil || got != "hello" {
		t.Errorf("string: got %q, err %v", got, err)
	}
	if got, err := StringAs[int]("42"); err != nil || got != 42 {
		t.Errorf("int: got %d, err %v", got, err)
	}
	if got, err := StringAs[bool]("true"); err != nil || !got {
		t.Errorf("bool: got %v, err %v", got, err)
	}
	if got, err := StringAs[float64]("3.5"); err != nil || got != 3.5 {
		t.Errorf("float: got %v, err %v", got, err)
	}
}

// TestStringAs_PrimitiveErrors verifies failed conversions return errors.
func TestStringAs_PrimitiveErrors(t *testing.T) {
	if _, err := StringAs[int]("not a number"); err == nil {
		t.Error("expected error parsing invalid int")
	}
	if _, err := StringAs[bool]("maybe"); err == nil {
		t.Error("expected error parsing invalid bool")
	}
}

// TestStringAs_ValidJSON verifies plain JSON unmarshaling into a struct.
func TestStringAs_ValidJSON(t *testing.T) {
	got, err := StringAs[person](`{"name":"Ada","age":36}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Ada" || got.Age != 36 {
		t.Errorf("unexpected result: %+v", got)
	}
}

// TestStringAs_RepairedJSON verifies that malformed JSON is repaired before
// the parse is abandoned: single quotes and unquoted keys are typical model
// output mistakes.
func TestStringAs_RepairedJSON(t *testing.T) {
	got, err := StringAs[person](`{name: 'Ada', age: 36}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Ada" || got.Age != 36 {
		t.Errorf("unexpected result: %+v", got)
	}
}

// TestStringAs_MapTarget verifies unmarshaling into a generic argument map,
// the shape the response parser uses for tool arguments.
func TestStringAs_MapTarget(t *testing.T) {
	got, err := StringAs[map[string]any](`{"path": "main.go", "limit": 5}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["path"] != "main.go" {
		t.Errorf("unexpected map contents: %v", got)
	}
}

// TestStringAs_Unrepairable verifies that content that is not JSON at all
// produces an error rather than a zero value.
func TestStringAs_Unrepairable(t *testing.T) {
	if got, err := StringAs[person](``); err == nil {
		t.Errorf("expected error for empty content, got %+v", got)
	}
}
