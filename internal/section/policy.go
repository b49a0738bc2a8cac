package section

// Headings every compliant document must contain, in reporting order.
const (
	HeadingRole   = "## Your Role"
	HeadingInput  = "## Input"
	HeadingOutput = "## Output Requirements"
)

// Optional headings recognised by Detect.
const (
	HeadingContext     = "## Context"
	HeadingConstraints = "## Constraints"
	HeadingExamples    = "## Examples"
	HeadingSteps       = "## Step-by-Step Instructions"
	HeadingSuccess     = "## Success Criteria"
	HeadingNotes       = "## Notes"
)

// Required returns the required headings in policy order.
func Required() []string {
	return []string{HeadingRole, HeadingInput, HeadingOutput}
}

// Optional returns the optional headings in policy order.
func Optional() []string {
	return []string{
		HeadingContext,
		HeadingConstraints,
		HeadingExamples,
		HeadingSteps,
		HeadingSuccess,
		HeadingNotes,
	}
}

// All returns required followed by optional headings.
func All() []string {
	return append(Required(), Optional()...)
}

// IsRequired reports whether heading is one of the required policy headings.
func IsRequired(heading string) bool {
	switch heading {
	case HeadingRole, HeadingInput, HeadingOutput:
		return true
	}
	return false
}
