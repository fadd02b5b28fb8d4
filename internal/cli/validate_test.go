package cli

import (
	"strings"
	"testing"
)

func TestValidateCommand_ValidYAML(t *testing.T) {
	output, err := runCLI(t, "validate", "testdata/valid.yaml")
	if err != nil {
		t.Fatalf("validate error: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "valid") {
		t.Errorf("expected %q in output, got: %s", "valid", output)
	}
}

func TestValidateCommand_ValidJSON(t *testing.T) {
	output, err := runCLI(t, "validate", "testdata/valid.json")
	if err != nil {
		t.Fatalf("validate error: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "valid") {
		t.Errorf("expected %q in output, got: %s", "valid", output)
	}
}

func TestValidateCommand_MissingFile(t *testing.T) {
	_, err := runCLI(t, "validate", "testdata/does-not-exist.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidateCommand_InvalidInstance(t *testing.T) {
	_, err := runCLI(t, "validate", "testdata/invalid.yaml")
	if err == nil {
		t.Fatal("expected a non-nil error for an instance missing machineSpeeds")
	}
	if !strings.Contains(err.Error(), "required") {
		t.Errorf("error = %q, want it to mention \"required\"", err.Error())
	}
}
