package validation

type FieldKind int

const (
	KindText FieldKind = iota
	KindNumber
	KindDate
)

// Rule describes the checks applied to one form field. Pattern names a tag
// registered on the underlying validator ("phone", "mailbox").
type Rule struct {
	Kind      FieldKind
	Required  bool
	MinLength int
	MaxLength int
	Pattern   string
	Min       *int
	Max       *int
	NotPast   bool
	NotFuture bool
}

type Rules map[string]Rule

func intp(v int) *int { return &v }

// NewExamRules are the intake form rules.
var NewExamRules = Rules{
	"orderNumber":   {Kind: KindText, Required: true, MinLength: 3, MaxLength: 20},
	"factory":       {Kind: KindText, Required: true, MinLength: 2, MaxLength: 50},
	"contactName":   {Kind: KindText, Required: true, MinLength: 2, MaxLength: 50},
	"phone":         {Kind: KindText, Required: true, MinLength: 9, MaxLength: 15, Pattern: "phone"},
	"email":         {Kind: KindText, Required: true, Pattern: "mailbox"},
	"quantity":      {Kind: KindNumber, Required: true, Min: intp(1), Max: intp(10000)},
	"requestedDate": {Kind: KindDate, Required: true, NotPast: true},
}

// CloseExamRules are the close form rules.
var CloseExamRules = Rules{
	"examNumber":  {Kind: KindText, Required: true, MinLength: 3, MaxLength: 20},
	"passed":      {Kind: KindNumber, Required: true, Min: intp(0), Max: intp(10000)},
	"failed":      {Kind: KindNumber, Required: true, Min: intp(0), Max: intp(10000)},
	"closingDate": {Kind: KindDate, Required: true, NotFuture: true},
}
