package engine_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/warp/camptrack/engine"
)

func row(first, last, dob, food string) engine.RawRow {
	return engine.RawRow{
		engine.FieldFirstName:   first,
		engine.FieldLastName:    last,
		engine.FieldDateOfBirth: dob,
		engine.FieldFoodUnits:   food,
	}
}

// =============================================================================
// DEDUPLICATION TESTS
// =============================================================================

func TestDedupe_CaseInsensitiveIdentity_FirstOccurrenceWins(t *testing.T) {
	// GIVEN: Ada twice (differing case, second row carries food units) and Bob
	// WHEN: Deduplicating
	// THEN: 2 accepted (Ada keeps first-row values: no override; Bob has 3),
	//       1 duplicate (the second Ada row)

	rows := []engine.RawRow{
		row("Ada", "Lovelace", "2010-01-01", ""),
		row("ADA", "LOVELACE", "2010-01-01", "5"),
		row("Bob", "Smith", "2011-02-02", "3"),
	}

	result := engine.Dedupe(rows)

	if len(result.Accepted) != 2 {
		t.Fatalf("expected 2 accepted, got %d", len(result.Accepted))
	}
	if len(result.Duplicates) != 1 {
		t.Fatalf("expected 1 duplicate, got %d", len(result.Duplicates))
	}
	if len(result.Malformed) != 0 {
		t.Fatalf("expected 0 malformed, got %d", len(result.Malformed))
	}

	ada := result.Accepted[0]
	if ada.FirstName != "Ada" || ada.FoodUnits != nil {
		t.Errorf("first occurrence must win: got %+v", ada)
	}

	bob := result.Accepted[1]
	if bob.FoodUnits == nil || !bob.FoodUnits.Equal(decimal.NewFromInt(3)) {
		t.Errorf("expected Bob foodUnits=3, got %+v", bob.FoodUnits)
	}

	if result.Duplicates[0][engine.FieldFirstName] != "ADA" {
		t.Errorf("duplicate should be the later row, got %v", result.Duplicates[0])
	}
}

func TestDedupe_MissingFields_Malformed(t *testing.T) {
	rows := []engine.RawRow{
		row("", "Smith", "2011-02-02", ""),
		row("Ann", "", "2011-02-02", ""),
		row("Ann", "Smith", "", ""),
	}

	result := engine.Dedupe(rows)

	if len(result.Malformed) != 3 {
		t.Fatalf("expected 3 malformed, got %d", len(result.Malformed))
	}
	if len(result.Accepted) != 0 {
		t.Errorf("expected 0 accepted, got %d", len(result.Accepted))
	}
}

func TestDedupe_BadDateOfBirth_Malformed(t *testing.T) {
	result := engine.Dedupe([]engine.RawRow{row("Ann", "Smith", "not-a-date", "")})

	if len(result.Malformed) != 1 {
		t.Fatalf("expected 1 malformed, got %d", len(result.Malformed))
	}
	if !strings.Contains(result.Malformed[0].Reason, "date_of_birth") {
		t.Errorf("reason should mention date_of_birth: %q", result.Malformed[0].Reason)
	}
}

func TestDedupe_BadFoodUnits_Malformed(t *testing.T) {
	// Non-empty but non-parsing, and negative, values are malformed;
	// empty means "use the camp default" and is fine.
	result := engine.Dedupe([]engine.RawRow{
		row("Ann", "Smith", "2011-02-02", "lots"),
		row("Ben", "Smith", "2011-02-02", "-4"),
		row("Cal", "Smith", "2011-02-02", ""),
	})

	if len(result.Malformed) != 2 {
		t.Fatalf("expected 2 malformed, got %d", len(result.Malformed))
	}
	if len(result.Accepted) != 1 {
		t.Fatalf("expected 1 accepted, got %d", len(result.Accepted))
	}
	if result.Accepted[0].FoodUnits != nil {
		t.Error("empty food_units must leave the override unset")
	}
}

func TestDedupe_MalformedRowsNeverConsideredForDedup(t *testing.T) {
	// GIVEN: A malformed Ada row followed by a valid Ada row
	// WHEN: Deduplicating
	// THEN: The valid row is accepted, not flagged as a duplicate

	result := engine.Dedupe([]engine.RawRow{
		row("Ada", "Lovelace", "bad-date", ""),
		row("Ada", "Lovelace", "2010-01-01", ""),
	})

	if len(result.Accepted) != 1 || len(result.Duplicates) != 0 || len(result.Malformed) != 1 {
		t.Errorf("got accepted=%d duplicates=%d malformed=%d",
			len(result.Accepted), len(result.Duplicates), len(result.Malformed))
	}
}

// =============================================================================
// CSV PARSING TESTS
// =============================================================================

func TestParseRoster_ValidHeaderAnyOrder(t *testing.T) {
	csv := "last_name,first_name,food_units,date_of_birth\nLovelace,Ada,,2010-01-01\n"

	rows, err := engine.ParseRoster(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0][engine.FieldFirstName] != "Ada" {
		t.Errorf("header-order independence broken: %v", rows[0])
	}
}

func TestParseRoster_MalformedHeader_Rejected(t *testing.T) {
	cases := []string{
		"first_name,last_name,dob,food_units\n",                       // renamed field
		"first_name,last_name,date_of_birth\n",                        // missing field
		"first_name,last_name,date_of_birth,food_units,extra\n",       // extra field
		"first_name,first_name,date_of_birth,food_units\n",            // duplicated field
	}

	for _, header := range cases {
		_, err := engine.ParseRoster(strings.NewReader(header + "a,b,c,d\n"))
		if err == nil {
			t.Errorf("header %q: expected MalformedHeaderError", header)
			continue
		}
		if !errors.Is(err, engine.ErrMalformedHeader) {
			t.Errorf("header %q: expected ErrMalformedHeader, got %v", header, err)
		}
	}
}

func TestParseRoster_EmptyInput_MalformedHeader(t *testing.T) {
	_, err := engine.ParseRoster(strings.NewReader(""))
	if err == nil {
		t.Fatal("expected error for empty input")
	}
}
