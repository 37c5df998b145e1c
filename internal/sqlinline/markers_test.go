package sqlinline

import (
	"testing"

	"bytepantry/internal/tools/sqllint"
)

func TestStatementsCarryUniqueMarkers(t *testing.T) {
	violations, err := sqllint.Lint(".")
	if err != nil {
		t.Fatalf("sqllint: %v", err)
	}
	for _, v := range violations {
		t.Errorf("%s:%d %s (%s)", v.File, v.Line, v.Message, v.Name)
	}
}
