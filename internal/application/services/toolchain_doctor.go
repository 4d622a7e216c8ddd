package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	apperrors "github.com/reglet-dev/santest/internal/application/errors"
	"github.com/reglet-dev/santest/internal/application/ports"
	"github.com/reglet-dev/santest/internal/domain/entities"
	"github.com/reglet-dev/santest/internal/domain/values"
)

// cargoVersionPattern matches "cargo 1.81.0-nightly (2dbb1af80 2024-06-18)".
var cargoVersionPattern = regexp.MustCompile(`cargo (\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?)`)

// DoctorReport describes whether the host can run sanitized tests.
type DoctorReport struct {
	Platform   values.PlatformProfile `json:"platform" yaml:"platform"`
	Raw        string                 `json:"raw_version" yaml:"raw_version"`
	Version    string                 `json:"version" yaml:"version"`
	Constraint string                 `json:"constraint,omitempty" yaml:"constraint,omitempty"`
	Problems   []string               `json:"problems,omitempty" yaml:"problems,omitempty"`
	Nightly    bool                   `json:"nightly" yaml:"nightly"`
}

// OK reports whether no problems were found.
func (r *DoctorReport) OK() bool {
	return len(r.Problems) == 0
}

// ToolchainDoctorUseCase checks the cargo toolchain against the configured
// channel and minimum version.
type ToolchainDoctorUseCase struct {
	host       ports.HostInspector
	runner     ports.ProcessRunner
	toolchain  entities.Toolchain
	constraint string
	logger     *slog.Logger
}

// NewToolchainDoctorUseCase creates a new doctor use case. constraint is a
// semver constraint such as ">= 1.80"; empty disables the version check.
func NewToolchainDoctorUseCase(
	host ports.HostInspector,
	runner ports.ProcessRunner,
	toolchain entities.Toolchain,
	constraint string,
	logger *slog.Logger,
) *ToolchainDoctorUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ToolchainDoctorUseCase{
		host:       host,
		runner:     runner,
		toolchain:  toolchain,
		constraint: constraint,
		logger:     logger,
	}
}

// Execute probes the toolchain and returns a report. An error is returned
// only when the probe itself cannot run or the constraint is malformed.
func (uc *ToolchainDoctorUseCase) Execute(ctx context.Context) (*DoctorReport, error) {
	report := &DoctorReport{
		Platform:   values.DetectPlatform(uc.host.OSIdentifier(ctx)),
		Constraint: uc.constraint,
	}

	var constraint *semver.Constraints
	if uc.constraint != "" {
		c, err := semver.NewConstraint(uc.constraint)
		if err != nil {
			return nil, apperrors.NewConfigurationError("toolchain.min_version", "invalid version constraint", err)
		}
		constraint = c
	}

	cmd := entities.Command{Name: uc.toolchain.Cargo}
	if cmd.Name == "" {
		cmd.Name = "cargo"
	}
	if uc.toolchain.Channel != "" {
		cmd.Args = append(cmd.Args, "+"+uc.toolchain.Channel)
	}
	cmd.Args = append(cmd.Args, "--version")

	var stdout, stderr bytes.Buffer
	code, err := uc.runner.Run(ctx, cmd, ports.Streams{Stdout: &stdout, Stderr: &stderr})
	if err != nil {
		return nil, apperrors.NewExecutionError(cmd.Name, "failed to probe toolchain", err)
	}
	if code != 0 {
		report.Problems = append(report.Problems,
			fmt.Sprintf("%s exited with status %d: %s", cmd.String(), code, strings.TrimSpace(stderr.String())))
		return report, nil
	}

	report.Raw = strings.TrimSpace(stdout.String())
	uc.logger.Debug("toolchain probed", "output", report.Raw)

	version, err := parseCargoVersion(report.Raw)
	if err != nil {
		report.Problems = append(report.Problems, err.Error())
		return report, nil
	}
	report.Version = version.String()
	report.Nightly = strings.Contains(version.Prerelease(), "nightly")

	if !report.Nightly {
		report.Problems = append(report.Problems,
			"sanitizers and -Zbuild-std require a nightly toolchain, found "+version.String())
	}

	if constraint != nil {
		// Constraints ignore prereleases, so compare the release part only.
		release, _ := version.SetPrerelease("")
		if ok, errs := constraint.Validate(&release); !ok {
			msgs := make([]string, 0, len(errs))
			for _, e := range errs {
				msgs = append(msgs, e.Error())
			}
			report.Problems = append(report.Problems, "toolchain version: "+strings.Join(msgs, "; "))
		}
	}

	return report, nil
}

// parseCargoVersion extracts the semantic version from `cargo --version`.
func parseCargoVersion(output string) (*semver.Version, error) {
	m := cargoVersionPattern.FindStringSubmatch(output)
	if m == nil {
		return nil, fmt.Errorf("unrecognized cargo version output: %q", output)
	}
	v, err := semver.NewVersion(m[1])
	if err != nil {
		return nil, fmt.Errorf("invalid cargo version %q: %w", m[1], err)
	}
	return v, nil
}
