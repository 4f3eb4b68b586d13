package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
)

func TestIsTerminal_Buffer(t *testing.T) {
	assert.False(t, isTerminal(new(bytes.Buffer)))
}

func TestReporter_Run(t *testing.T) {
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	r := &reporter{out: out, errOut: errOut, styles: newReportStyles(false)}

	r.Run(sampleRun())

	assert.Contains(t, out.String(), "Processed 2 documents (1 errors) in 250ms")
	assert.Contains(t, out.String(), "Run ID: run-1")
	assert.Equal(t, "Error: Error extracting text from PDF c.pdf: bad xref\n", errOut.String())
}

func TestReporter_RunWithoutArchive(t *testing.T) {
	out := new(bytes.Buffer)
	r := &reporter{out: out, errOut: new(bytes.Buffer), styles: newReportStyles(false)}

	r.Run(&domain.RunResult{})

	assert.Contains(t, out.String(), "Processed 0 documents (0 errors)")
	assert.NotContains(t, out.String(), "Run ID")
}

func TestReporter_Failure(t *testing.T) {
	errOut := new(bytes.Buffer)
	r := &reporter{out: new(bytes.Buffer), errOut: errOut, styles: newReportStyles(false)}

	r.Failure(errors.New("write json: disk full"))

	assert.Equal(t, "Error: write json: disk full\n", errOut.String())
}
