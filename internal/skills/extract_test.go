package skills

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_EmptyText(t *testing.T) {
	found := Extract("", DefaultVocabulary())
	assert.Equal(t, 0, found.Len())
	assert.Empty(t, found.Slice())
}

func TestExtract_NilVocabulary(t *testing.T) {
	found := Extract("python", nil)
	assert.Equal(t, 0, found.Len())
}

func TestExtract_CaseInsensitive(t *testing.T) {
	found := Extract("Worked with PYTHON, Docker and AWS", NewVocabulary("python", "docker", "aws", "go"))
	assert.Equal(t, []string{"aws", "docker", "python"}, found.Slice())
}

func TestExtract_MultiWordEntries(t *testing.T) {
	vocab := NewVocabulary("machine learning", "raspberry pi", "data analysis")
	found := Extract("Built Machine Learning models on a Raspberry Pi cluster", vocab)

	assert.True(t, found.Contains("machine learning"))
	assert.True(t, found.Contains("raspberry pi"))
	assert.False(t, found.Contains("data analysis"))
}

func TestExtract_DuplicateMentions(t *testing.T) {
	found := Extract("sql SQL Sql and more sql", NewVocabulary("sql"))
	assert.Equal(t, []string{"sql"}, found.Slice())
}

// Single-letter entries match inside unrelated words. The behavior is intentional
// and documented on Extract.
func TestExtract_SingleCharacterEntryMatchesSubstrings(t *testing.T) {
	found := Extract("Experienced in cloud tooling", DefaultVocabulary())
	assert.True(t, found.Contains("c"))
}

func TestExtract_ResumeAndJobScenario(t *testing.T) {
	vocab := DefaultVocabulary()
	resume := Extract("Experienced in Python and SQL.", vocab)
	job := Extract("Looking for a Python, SQL, and AWS engineer.", vocab)

	// "experienced" contains the letter c, which is a vocabulary entry.
	assert.Equal(t, []string{"c", "python", "sql"}, resume.Slice())
	assert.Equal(t, []string{"aws", "python", "sql"}, job.Slice())
	assert.Equal(t, []string{"aws"}, job.Difference(resume).Slice())
}

func TestNewVocabulary_NormalizesEntries(t *testing.T) {
	vocab := NewVocabulary(" Python ", "python", "", "  ", "Machine Learning")
	assert.Equal(t, []string{"python", "machine learning"}, vocab.Entries())
	assert.Equal(t, 2, vocab.Len())
}

func TestVocabulary_EntriesReturnsCopy(t *testing.T) {
	vocab := NewVocabulary("python", "sql")
	entries := vocab.Entries()
	entries[0] = "mutated"

	assert.Equal(t, []string{"python", "sql"}, vocab.Entries())
}

func TestDefaultVocabulary(t *testing.T) {
	vocab := DefaultVocabulary()
	entries := vocab.Entries()

	assert.Len(t, entries, 31)
	assert.Equal(t, "python", entries[0])
	assert.Contains(t, entries, "raspberry pi")
	for _, entry := range entries {
		assert.NotEmpty(t, entry)
	}
}

func TestSet_Difference(t *testing.T) {
	tests := []struct {
		name     string
		left     Set
		right    Set
		expected []string
	}{
		{name: "disjoint", left: NewSet("aws", "git"), right: NewSet("sql"), expected: []string{"aws", "git"}},
		{name: "subset", left: NewSet("sql"), right: NewSet("sql", "aws"), expected: []string{}},
		{name: "overlap", left: NewSet("sql", "aws", "git"), right: NewSet("git"), expected: []string{"aws", "sql"}},
		{name: "zero value", left: Set{}, right: NewSet("git"), expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff := tt.left.Difference(tt.right)
			assert.Equal(t, tt.expected, diff.Slice())
			for _, skill := range diff.Slice() {
				assert.True(t, tt.left.Contains(skill))
				assert.False(t, tt.right.Contains(skill))
			}
		})
	}
}

func TestSet_JSON(t *testing.T) {
	data, err := json.Marshal(Set{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	data, err = json.Marshal(NewSet("sql", "aws"))
	require.NoError(t, err)
	assert.Equal(t, `["aws","sql"]`, string(data))

	var decoded Set
	require.NoError(t, json.Unmarshal([]byte(`["git","git","linux"]`), &decoded))
	assert.Equal(t, []string{"git", "linux"}, decoded.Slice())
}
