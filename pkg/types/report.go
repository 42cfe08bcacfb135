package types

// InstallOutcome is the result of installing one command line input
type InstallOutcome struct {
	Input  string         `json:"input" yaml:"input"`
	Kind   AppType        `json:"kind,omitempty" yaml:"kind,omitempty"`
	Result *InstallResult `json:"result,omitempty" yaml:"result,omitempty"`
	Err    error          `json:"-" yaml:"-"`
}

// InstallReport collects one outcome per input, in input order
type InstallReport struct {
	Outcomes []InstallOutcome `json:"outcomes" yaml:"outcomes"`
}

// Failed returns the number of inputs that did not install
func (r *InstallReport) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// Succeeded returns the number of inputs that installed
func (r *InstallReport) Succeeded() int {
	return len(r.Outcomes) - r.Failed()
}

// UninstallOutcome is the result of removing one command line input
type UninstallOutcome struct {
	Input string `json:"input" yaml:"input"`
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	// WasInstalled is false when there was nothing to remove
	WasInstalled bool  `json:"was_installed" yaml:"was_installed"`
	Err          error `json:"-" yaml:"-"`
}

// UninstallReport collects one outcome per input, in input order
type UninstallReport struct {
	Outcomes []UninstallOutcome `json:"outcomes" yaml:"outcomes"`
}

// Failed returns the number of inputs that could not be removed
func (r *UninstallReport) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}
