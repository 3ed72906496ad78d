package vtcore

import (
	"bytes"
	"sync"
	"testing"
)

func TestSetUserVar(t *testing.T) {
	term := New()
	term.Screen().SetUserVar("SANETTY_USER", "daniel")

	if val, ok := term.GetUserVar("SANETTY_USER"); !ok || val != "daniel" {
		t.Errorf("expected 'daniel', got %q ok=%v", val, ok)
	}
}

func TestGetUserVarNotSet(t *testing.T) {
	term := New()
	if val, ok := term.GetUserVar("NONEXISTENT"); ok || val != "" {
		t.Errorf("expected empty/false for unset variable, got %q/%v", val, ok)
	}
}

func TestGetUserVars(t *testing.T) {
	term := New()
	term.Screen().SetUserVar("VAR1", "value1")
	term.Screen().SetUserVar("VAR2", "value2")
	term.Screen().SetUserVar("VAR3", "value3")

	vars := term.GetUserVars()
	if len(vars) != 3 {
		t.Errorf("expected 3 variables, got %d", len(vars))
	}
	if vars["VAR1"] != "value1" || vars["VAR2"] != "value2" || vars["VAR3"] != "value3" {
		t.Errorf("unexpected vars: %+v", vars)
	}
}

func TestGetUserVarsReturnsACopy(t *testing.T) {
	term := New()
	term.Screen().SetUserVar("VAR1", "value1")

	vars := term.GetUserVars()
	vars["VAR1"] = "modified"
	vars["NEW_VAR"] = "new_value"

	if val, _ := term.GetUserVar("VAR1"); val != "value1" {
		t.Errorf("expected original value 'value1', got %q", val)
	}
	if _, ok := term.GetUserVar("NEW_VAR"); ok {
		t.Error("expected NEW_VAR to not exist")
	}
}

func TestClearUserVars(t *testing.T) {
	term := New()
	term.Screen().SetUserVar("VAR1", "value1")
	term.Screen().SetUserVar("VAR2", "value2")

	term.ClearUserVars()

	if vars := term.GetUserVars(); len(vars) != 0 {
		t.Errorf("expected 0 variables after clear, got %d", len(vars))
	}
	if _, ok := term.GetUserVar("VAR1"); ok {
		t.Error("expected VAR1 to be gone after clear")
	}
}

func TestUserVarOverwrite(t *testing.T) {
	term := New()
	term.Screen().SetUserVar("VAR1", "initial")
	term.Screen().SetUserVar("VAR1", "updated")

	if val, _ := term.GetUserVar("VAR1"); val != "updated" {
		t.Errorf("expected 'updated', got %q", val)
	}
}

func TestUserVarEmptyValue(t *testing.T) {
	term := New()
	term.Screen().SetUserVar("VAR1", "")

	val, ok := term.GetUserVar("VAR1")
	if !ok || val != "" {
		t.Errorf("expected VAR1 to exist with empty value, got %q ok=%v", val, ok)
	}
}

func TestUserVarThreadSafety(t *testing.T) {
	term := New()

	var wg sync.WaitGroup
	const numGoroutines = 100

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			term.Screen().SetUserVar("VAR", "value")
		}()
	}
	wg.Wait()

	wg.Add(numGoroutines * 2)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			term.Screen().SetUserVar("VAR", "value")
		}()
		go func() {
			defer wg.Done()
			_, _ = term.GetUserVar("VAR")
			_ = term.GetUserVars()
		}()
	}
	wg.Wait()

	if val, _ := term.GetUserVar("VAR"); val != "value" {
		t.Errorf("expected 'value', got %q", val)
	}
}

func TestOSC1337SetUserVar(t *testing.T) {
	term := New()
	// "test_value" in base64 is "dGVzdF92YWx1ZQ=="
	osc := "\x1b]1337;SetUserVar=TEST_VAR=dGVzdF92YWx1ZQ==\x07"
	_, _ = term.Write([]byte(osc))

	if val, ok := term.GetUserVar("TEST_VAR"); !ok || val != "test_value" {
		t.Errorf("expected 'test_value', got %q ok=%v", val, ok)
	}
}

func TestOSC1337SetUserVarWithST(t *testing.T) {
	term := New()
	// "hello" in base64 is "aGVsbG8="
	osc := "\x1b]1337;SetUserVar=HELLO=aGVsbG8=\x1b\\"
	_, _ = term.Write([]byte(osc))

	if val, ok := term.GetUserVar("HELLO"); !ok || val != "hello" {
		t.Errorf("expected 'hello', got %q ok=%v", val, ok)
	}
}

func TestOSC1337InvalidBase64(t *testing.T) {
	term := New()
	osc := "\x1b]1337;SetUserVar=TEST=!@#$%^\x07"
	_, _ = term.Write([]byte(osc))

	if _, ok := term.GetUserVar("TEST"); ok {
		t.Error("expected invalid base64 payload not to set the variable")
	}
}

func TestOSC1337EmptyValue(t *testing.T) {
	term := New()
	osc := "\x1b]1337;SetUserVar=EMPTY=\x07"
	_, _ = term.Write([]byte(osc))

	if _, ok := term.GetUserVar("EMPTY"); !ok {
		t.Error("expected EMPTY variable to exist")
	}
}

func TestOSC1337SpecialCharacters(t *testing.T) {
	term := New()
	// "hello\nworld\ttab" in base64 is "aGVsbG8Kd29ybGQJdGFi"
	osc := "\x1b]1337;SetUserVar=SPECIAL=aGVsbG8Kd29ybGQJdGFi\x07"
	_, _ = term.Write([]byte(osc))

	expected := "hello\nworld\ttab"
	if val, ok := term.GetUserVar("SPECIAL"); !ok || val != expected {
		t.Errorf("expected %q, got %q ok=%v", expected, val, ok)
	}
}

func TestUserVarsWithResponse(t *testing.T) {
	var buf bytes.Buffer
	term := New(WithResponse(&buf))

	osc := "\x1b]1337;SetUserVar=TEST=dGVzdA==\x07"
	_, _ = term.Write([]byte(osc))

	if buf.Len() != 0 {
		t.Errorf("expected no response, got %d bytes", buf.Len())
	}
	if val, ok := term.GetUserVar("TEST"); !ok || val != "test" {
		t.Errorf("expected 'test', got %q ok=%v", val, ok)
	}
}
