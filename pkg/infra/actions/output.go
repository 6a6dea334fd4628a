package actions

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// Output reports step outputs and failure status to a GitHub Actions runner
type Output struct {
	outputFile string
	w          io.Writer
}

// New creates an Output. outputFile is the path given by GITHUB_OUTPUT, and may be empty
// when running outside of a workflow; outputs are then written to w.
func New(outputFile string, w io.Writer) *Output {
	return &Output{
		outputFile: outputFile,
		w:          w,
	}
}

// SetOutput sets a step output
func (x *Output) SetOutput(name, value string) error {
	if x.outputFile == "" {
		_, err := fmt.Fprintf(x.w, "%s=%s\n", name, value)
		return err
	}

	msg, err := keyValueMessage(name, value)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(x.outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return goerr.Wrap(err, "failed to open output file", goerr.V("path", x.outputFile))
	}
	defer f.Close()

	if _, err := f.WriteString(msg); err != nil {
		return goerr.Wrap(err, "failed to write output file", goerr.V("path", x.outputFile))
	}
	return nil
}

// SetFailed reports err as the failure reason of the step
func (x *Output) SetFailed(err error) {
	msg := strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(err.Error())
	fmt.Fprintf(x.w, "::error::%s\n", msg)
}

// keyValueMessage formats name and value with a random heredoc delimiter
func keyValueMessage(name, value string) (string, error) {
	delimiter := "ghadelimiter_" + uuid.NewString()

	if strings.Contains(name, delimiter) {
		return "", goerr.New("unexpected input: name should not contain the delimiter", goerr.V("name", name))
	}
	if strings.Contains(value, delimiter) {
		return "", goerr.New("unexpected input: value should not contain the delimiter", goerr.V("name", name))
	}

	return fmt.Sprintf("%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter), nil
}
