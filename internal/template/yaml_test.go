package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kmadrilejo/atelier/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplateFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile_Valid(t *testing.T) {
	path := writeTemplateFile(t, `
id: retainer
code_prefix: RET
tasks:
  - name: Monthly Planning
    duration_days: 2
    priority: high
  - name: Execution
    duration_days: 15
    depends_on: [Monthly Planning]
    estimated_hours: 60
milestones:
  - title: Month Close
    offset_days: 30
`)

	file, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "retainer", file.ID)
	assert.Equal(t, "RET", file.Template.CodePrefix)
	require.Len(t, file.Template.Tasks, 2)
	assert.Equal(t, domain.PriorityHigh, file.Template.Tasks[0].Priority)
	assert.Equal(t, []string{"Monthly Planning"}, file.Template.Tasks[1].DependsOn)
	assert.Equal(t, 60.0, *file.Template.Tasks[1].EstimatedHours)
	require.Len(t, file.Template.Milestones, 1)
	assert.Equal(t, 30, file.Template.Milestones[0].OffsetDays)
}

func TestLoadFile_MissingID(t *testing.T) {
	path := writeTemplateFile(t, `
code_prefix: NID
tasks:
  - name: Task
    duration_days: 1
`)

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLoadFile_InvalidTemplate(t *testing.T) {
	path := writeTemplateFile(t, `
id: broken
code_prefix: BRK
tasks:
  - name: Task
    duration_days: 1
    depends_on: [Ghost]
`)

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
