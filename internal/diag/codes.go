package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// literal restoration
	LitSpanCount Code = 1001
	LitLineCount Code = 1002

	// filters
	FltMatchAborted Code = 2001
	FltStageFailed  Code = 2002

	// input / output
	IOReadFailed  Code = 3001
	IOWriteFailed Code = 3002

	// configuration
	CfgInvalid Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:     "Unknown error",
	LitSpanCount:    "Literal span count changed during filtering",
	LitLineCount:    "Line count changed during filtering",
	FltMatchAborted: "Pattern match aborted",
	FltStageFailed:  "Filter stage failed",
	IOReadFailed:    "Cannot read input",
	IOWriteFailed:   "Cannot write output",
	CfgInvalid:      "Invalid configuration",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LIT%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("FLT%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("CFG%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
