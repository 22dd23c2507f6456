package cli_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jsonstruct runs the command with args, feeding stdin when non-empty.
func jsonstruct(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := exec.Command("go", append([]string{"run", "../.."}, args...)...)
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// TestCLI_FileInputOutput tests the CLI with file input and output
func TestCLI_FileInputOutput(t *testing.T) {
	tempDir := t.TempDir()

	jsonContent := `{
		"name": "John Doe",
		"age": 30,
		"address": {
			"street": "123 Main St",
			"zip": "12345"
		},
		"phones": [
			{"type": "home", "number": "555-1234"},
			{"type": "work", "number": "555-5678"}
		],
		"active": true
	}`
	jsonFile := filepath.Join(tempDir, "test.json")
	require.NoError(t, os.WriteFile(jsonFile, []byte(jsonContent), 0644))

	outputFile := filepath.Join(tempDir, "output.go")

	_, stderr, err := jsonstruct(t, "", "-n", "Person", "-i", jsonFile, "-o", outputFile, "-p", "testpackage")
	require.NoError(t, err, "CLI command failed: %s", stderr)

	generatedCode, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	expected := "package testpackage\n\n" +
		"type Person struct {\n" +
		"\tName string `json:\"name\"`\n" +
		"\tAge int `json:\"age\"`\n" +
		"\tAddress struct {\n" +
		"\t\tStreet string `json:\"street\"`\n" +
		"\t\tZip string `json:\"zip\"`\n" +
		"\t} `json:\"address\"`\n" +
		"\tPhones []struct {\n" +
		"\t\tType string `json:\"type\"`\n" +
		"\t\tNumber string `json:\"number\"`\n" +
		"\t} `json:\"phones\"`\n" +
		"\tActive bool `json:\"active\"`\n" +
		"}\n"
	assert.Equal(t, expected, string(generatedCode))
}

// TestCLI_StdinStdout tests the CLI with stdin input and stdout output
func TestCLI_StdinStdout(t *testing.T) {
	stdout, stderr, err := jsonstruct(t, `{"a": 1, "b": {"c": "x"}}`, "--name", "Foo")
	require.NoError(t, err, "CLI command failed: %s", stderr)

	expected := "type Foo struct {\n" +
		"\tA int `json:\"a\"`\n" +
		"\tB struct {\n" +
		"\t\tC string `json:\"c\"`\n" +
		"\t} `json:\"b\"`\n" +
		"}\n"
	assert.Equal(t, expected, stdout)
}

// TestCLI_Format tests the gofmt pass
func TestCLI_Format(t *testing.T) {
	stdout, stderr, err := jsonstruct(t, `{"user_id": 1, "name": "x"}`, "-n", "User", "-f", "-p", "models")
	require.NoError(t, err, "CLI command failed: %s", stderr)

	assert.Contains(t, stdout, "package models\n")
	assert.Regexp(t, `UserID int\s+\x60json:"user_id"\x60`, stdout)
	assert.Regexp(t, `Name\s+string \x60json:"name"\x60`, stdout)
}

// TestCLI_Int64 tests the int64 flag
func TestCLI_Int64(t *testing.T) {
	stdout, stderr, err := jsonstruct(t, `{"count": 1, "ratio": 0.5}`, "-n", "Stats", "--int64")
	require.NoError(t, err, "CLI command failed: %s", stderr)

	expected := "type Stats struct {\n" +
		"\tCount int64 `json:\"count\"`\n" +
		"\tRatio float64 `json:\"ratio\"`\n" +
		"}\n"
	assert.Equal(t, expected, stdout)
}

// TestCLI_MalformedNumber tests that numbers outside the JSON grammar are rejected
func TestCLI_MalformedNumber(t *testing.T) {
	stdout, stderr, err := jsonstruct(t, `{"n": 01}`, "-n", "X")
	assert.Error(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "invalid number")
}

// TestCLI_ArrayInput tests that a top-level array is rejected
func TestCLI_ArrayInput(t *testing.T) {
	stdout, stderr, err := jsonstruct(t, `[{"id": 1}]`, "-n", "Item")
	assert.Error(t, err, "CLI should fail with a top-level array")
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "top level must be an object")
}

// TestCLI_InvalidJSON tests the CLI with invalid JSON input
func TestCLI_InvalidJSON(t *testing.T) {
	_, stderr, err := jsonstruct(t, `{"name": "Invalid JSON, "age": 30}`, "-n", "X")
	assert.Error(t, err, "CLI should fail with invalid JSON")
	assert.Contains(t, stderr, "JSON parsing error")
}

// TestCLI_EmptyInput tests the CLI with empty input
func TestCLI_EmptyInput(t *testing.T) {
	_, stderr, err := jsonstruct(t, "", "-n", "X")
	assert.Error(t, err, "CLI should fail with empty input")
	assert.Contains(t, stderr, "input is empty")
}

// TestCLI_MissingName tests that the root name is required
func TestCLI_MissingName(t *testing.T) {
	_, stderr, err := jsonstruct(t, `{"a": 1}`)
	assert.Error(t, err)
	assert.Contains(t, stderr, "--name")
}

// TestCLI_MissingInputFile tests that a missing file names the path
func TestCLI_MissingInputFile(t *testing.T) {
	_, stderr, err := jsonstruct(t, "", "-n", "X", "-i", "/non/existent/file.json")
	assert.Error(t, err)
	assert.Contains(t, stderr, "/non/existent/file.json")
}

// TestCLI_ConfigFile tests settings loaded from a config file
func TestCLI_ConfigFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "jsonstruct.yml")
	configContent := "package: api\n" +
		"types:\n" +
		"  force_int64: true\n" +
		"naming:\n" +
		"  field_mappings:\n" +
		"    html_url: Link\n"
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	stdout, stderr, err := jsonstruct(t, `{"count": 1, "html_url": "x"}`, "-n", "Page", "-C", configFile)
	require.NoError(t, err, "CLI command failed: %s", stderr)

	expected := "package api\n\n" +
		"type Page struct {\n" +
		"\tCount int64 `json:\"count\"`\n" +
		"\tLink string `json:\"html_url\"`\n" +
		"}\n"
	assert.Equal(t, expected, stdout)
}

// TestCLI_Version tests the version flag
func TestCLI_Version(t *testing.T) {
	stdout, stderr, err := jsonstruct(t, "", "-v")
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Contains(t, stdout, "0.1.0")
}

// TestCLI_Help tests the help output
func TestCLI_Help(t *testing.T) {
	stdout, _, err := jsonstruct(t, "", "--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "-n, --name")
	assert.Contains(t, stdout, "-i, --input")
	assert.Contains(t, stdout, "-o, --output")
	assert.Contains(t, stdout, "-p, --package")
	assert.Contains(t, stdout, "-P, --path")
	assert.Contains(t, stdout, "-s, --schema")
	assert.Contains(t, stdout, "-c, --check")
}
