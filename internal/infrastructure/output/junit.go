package output

import (
	"encoding/xml"
	"io"

	"github.com/reglet-dev/santest/internal/domain/execution"
	"github.com/reglet-dev/santest/internal/domain/values"
)

// JUnitFormatter formats pipeline results as JUnit XML so CI systems can
// display per-job outcomes.
type JUnitFormatter struct {
	writer io.Writer
}

// NewJUnitFormatter creates a new JUnit formatter.
func NewJUnitFormatter(w io.Writer) *JUnitFormatter {
	return &JUnitFormatter{
		writer: w,
	}
}

// JUnitTestSuites JUnit XML structures
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Name       string           `xml:"name,attr"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

type JUnitTestSuite struct {
	XMLName   xml.Name        `xml:"testsuite"`
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	Errors    int             `xml:"errors,attr"`
	Skipped   int             `xml:"skipped,attr"`
	Time      float64         `xml:"time,attr"`
	TestCases []JUnitTestCase `xml:"testcase"`
}

type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Error     *JUnitError   `xml:"error,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
	SystemOut string        `xml:"system-out,omitempty"`
}

type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Content string `xml:",chardata"`
}

type JUnitError struct {
	Message string `xml:"message,attr"`
	Content string `xml:",chardata"`
}

type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// Format writes the pipeline result as JUnit XML.
func (f *JUnitFormatter) Format(result *execution.PipelineResult) error {
	suite := JUnitTestSuite{
		Name:     "pipeline",
		Tests:    result.Summary.TotalJobs,
		Failures: result.Summary.FailedJobs,
		Errors:   result.Summary.ErrorJobs,
		Skipped:  result.Summary.SkippedJobs,
		Time:     result.Duration.Seconds(),
	}

	for _, job := range result.Jobs {
		c := JUnitTestCase{
			Name:      job.Name,
			ClassName: job.Command,
			Time:      job.Duration.Seconds(),
		}

		switch job.Status {
		case values.StatusFail:
			c.Failure = &JUnitFailure{Message: job.Message, Content: job.Output}
		case values.StatusError:
			c.Error = &JUnitError{Message: job.Message, Content: job.Output}
		case values.StatusSkipped:
			c.Skipped = &JUnitSkipped{Message: job.SkipReason}
		default:
			c.SystemOut = job.Output
		}

		suite.TestCases = append(suite.TestCases, c)
	}

	suites := JUnitTestSuites{
		Name:       "santest " + result.RunID.String(),
		Tests:      result.Summary.TotalJobs,
		Failures:   result.Summary.FailedJobs,
		Errors:     result.Summary.ErrorJobs,
		Time:       result.Duration.Seconds(),
		TestSuites: []JUnitTestSuite{suite},
	}

	_, err := f.writer.Write([]byte(xml.Header))
	if err != nil {
		return err
	}

	encoder := xml.NewEncoder(f.writer)
	encoder.Indent("", "  ")
	if err := encoder.Encode(suites); err != nil {
		return err
	}

	_, err = f.writer.Write([]byte("\n"))
	return err
}
