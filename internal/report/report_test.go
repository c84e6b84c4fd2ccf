package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volleytrieste/dbsetup/internal/runner"
)

const (
	createTables = "scripts/01_create_tables.sql"
	seedData     = "scripts/02_seed_data.sql"
)

func defaultOptions() TextOptions {
	return TextOptions{
		Project:       "Volley Club Trieste",
		Dashboard:     "Supabase",
		PreviewLength: 200,
		BannerWidth:   50,
	}
}

func runText(t *testing.T, fsys fstest.MapFS, opts TextOptions) string {
	t.Helper()
	var buf bytes.Buffer
	rep := NewTextReporter(&buf, opts, Styles{})
	_, err := runner.New(fsys, []string{createTables, seedData}, rep, nil).Run(context.Background())
	require.NoError(t, err)
	return buf.String()
}

func TestTextReporter_AllScripts(t *testing.T) {
	out := runText(t, fstest.MapFS{
		createTables: {Data: []byte("CREATE TABLE t (id INT);")},
		seedData:     {Data: []byte("INSERT INTO t VALUES (1);")},
	}, defaultOptions())

	bar := strings.Repeat("=", 50)
	want := "Setting up Volley Club Trieste database...\n" +
		"Processing SQL script: " + createTables + "\n" +
		"SQL Content Preview: CREATE TABLE t (id INT);...\n" +
		"\n" + bar + "\n" +
		"SQL SCRIPT: " + createTables + "\n" +
		bar + "\n" +
		"CREATE TABLE t (id INT);\n" +
		bar + "\n\n" +
		"Processing SQL script: " + seedData + "\n" +
		"SQL Content Preview: INSERT INTO t VALUES (1);...\n" +
		"\n" + bar + "\n" +
		"SQL SCRIPT: " + seedData + "\n" +
		bar + "\n" +
		"INSERT INTO t VALUES (1);\n" +
		bar + "\n\n" +
		"\nProcessed 2/2 scripts\n" +
		"✅ Database setup completed successfully!\n" +
		"\nNext steps:\n" +
		"1. Copy the SQL commands above\n" +
		"2. Go to your Supabase project dashboard\n" +
		"3. Navigate to the SQL Editor\n" +
		"4. Paste and execute each SQL script\n" +
		"5. Refresh your application to see the data\n"

	assert.Equal(t, want, out)
}

func TestTextReporter_MissingScript(t *testing.T) {
	out := runText(t, fstest.MapFS{
		createTables: {Data: []byte("CREATE TABLE t (id INT);")},
	}, defaultOptions())

	assert.Contains(t, out, "SQL script not found: "+seedData+"\n")
	assert.NotContains(t, out, "SQL SCRIPT: "+seedData)
	assert.Contains(t, out, "\nProcessed 1/2 scripts\n")
	assert.Contains(t, out, "❌ Some scripts failed to process\n")
	assert.NotContains(t, out, "Next steps")
	assert.NotContains(t, out, "completed successfully")
}

func TestTextReporter_ReadError(t *testing.T) {
	out := runText(t, fstest.MapFS{
		createTables: {Data: []byte{0xff, 0xfe}},
		seedData:     {Data: []byte("INSERT INTO t VALUES (1);")},
	}, defaultOptions())

	assert.Contains(t, out, "Error reading SQL script "+createTables+": content is not valid UTF-8\n")
	assert.Contains(t, out, "Failed to process "+createTables+"\n")
	assert.Contains(t, out, "SQL SCRIPT: "+seedData)
	assert.Contains(t, out, "Processed 1/2 scripts")
}

func TestTextReporter_PreviewTruncated(t *testing.T) {
	long := strings.Repeat("è", 250)
	out := runText(t, fstest.MapFS{
		createTables: {Data: []byte(long)},
		seedData:     {Data: []byte("SELECT 1;")},
	}, defaultOptions())

	assert.Contains(t, out, "SQL Content Preview: "+strings.Repeat("è", 200)+"...\n")
	assert.NotContains(t, out, "SQL Content Preview: "+strings.Repeat("è", 201))
	assert.Contains(t, out, "\n"+long+"\n", "full content must follow the preview")
}

func TestTextReporter_Quiet(t *testing.T) {
	opts := defaultOptions()
	opts.Quiet = true
	out := runText(t, fstest.MapFS{
		createTables: {Data: []byte("CREATE TABLE t (id INT);")},
		seedData:     {Data: []byte("INSERT INTO t VALUES (1);")},
	}, opts)

	assert.NotContains(t, out, "Setting up")
	assert.NotContains(t, out, "SQL Content Preview")
	assert.NotContains(t, out, "Next steps")
	assert.Contains(t, out, "CREATE TABLE t (id INT);\n")
	assert.Contains(t, out, "Processed 2/2 scripts")
}

func TestTextReporter_BannerWidth(t *testing.T) {
	opts := defaultOptions()
	opts.BannerWidth = 10
	out := runText(t, fstest.MapFS{
		createTables: {Data: []byte("CREATE TABLE t (id INT);")},
		seedData:     {Data: []byte("INSERT INTO t VALUES (1);")},
	}, opts)

	assert.Contains(t, out, "\n==========\nSQL SCRIPT: ")
	assert.NotContains(t, out, "===========")
}

func TestPreview(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		n       int
		want    string
	}{
		{"shorter than limit", "SELECT 1;", 200, "SELECT 1;"},
		{"exact length", "abcde", 5, "abcde"},
		{"truncated", "abcdef", 3, "abc"},
		{"multibyte", "àèìòù", 2, "àè"},
		{"zero", "abc", 0, ""},
		{"empty content", "", 10, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Preview(tc.content, tc.n))
		})
	}
}

func TestJSONReporter(t *testing.T) {
	fsys := fstest.MapFS{
		createTables: {Data: []byte("CREATE TABLE t (id INT);")},
	}

	for _, include := range []bool{false, true} {
		var buf bytes.Buffer
		rep := NewJSONReporter(&buf, "Volley Club Trieste", include)
		result, err := runner.New(fsys, []string{createTables, seedData}, rep, nil).Run(context.Background())
		require.NoError(t, err)

		var got JSONReport
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

		assert.Equal(t, result.RunID, got.RunID)
		assert.Equal(t, 2, got.Total)
		assert.Equal(t, 1, got.Succeeded)
		assert.False(t, got.Complete)
		require.Len(t, got.Scripts, 2)
		assert.Equal(t, "success", got.Scripts[0].Outcome)
		assert.Equal(t, 24, got.Scripts[0].Bytes)
		assert.Equal(t, "missing", got.Scripts[1].Outcome)
		assert.Equal(t, "SQL script not found: "+seedData, got.Scripts[1].Error)

		if include {
			assert.Equal(t, "CREATE TABLE t (id INT);", got.Scripts[0].Content)
		} else {
			assert.Empty(t, got.Scripts[0].Content)
		}
	}
}

func TestNewStyles(t *testing.T) {
	var buf bytes.Buffer

	plain, err := NewStyles(&buf, ColorAuto)
	require.NoError(t, err)
	assert.Equal(t, "ok", plain.Success("ok"), "non-terminal writers get no color in auto mode")

	never, err := NewStyles(&buf, ColorNever)
	require.NoError(t, err)
	assert.Equal(t, "ok", never.Failure("ok"))

	always, err := NewStyles(&buf, ColorAlways)
	require.NoError(t, err)
	styled := always.Success("ok")
	assert.Contains(t, styled, "ok")
	assert.Contains(t, styled, "\x1b[")

	_, err = NewStyles(&buf, "sometimes")
	assert.Error(t, err)
}
