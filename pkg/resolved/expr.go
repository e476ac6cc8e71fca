package resolved

// Expr is a resolved scalar expression. Every expression carries its
// resolved type.
type Expr interface {
	Type() Type
	exprNode()
}

// Function names the analyzer uses for conditional forms. CASE arrives as
// a regular function call with one of these internal names; comparisons
// against them are case-insensitive.
const (
	FuncCaseNoValue   = "$case_no_value"
	FuncCaseWithValue = "$case_with_value"
	FuncIf            = "if"
	FuncNullIf        = "nullif"
)

// Literal is a constant value.
type Literal struct {
	Typ   Type   `json:"type,omitempty"`
	Value string `json:"value,omitempty"`
}

// ColumnRef references a resolved column.
type ColumnRef struct {
	Typ    Type   `json:"type,omitempty"`
	Column Column `json:"column"`
}

// Cast converts the wrapped expression to another type.
type Cast struct {
	Typ  Type `json:"type,omitempty"`
	Expr Expr `json:"expr"`
}

// FunctionCall is a scalar function call.
type FunctionCall struct {
	Typ  Type   `json:"type,omitempty"`
	Name string `json:"name"`
	Args []Expr `json:"args,omitempty"`
}

// AggregateFunctionCall is an aggregate function call.
type AggregateFunctionCall struct {
	Typ  Type   `json:"type,omitempty"`
	Name string `json:"name"`
	Args []Expr `json:"args,omitempty"`
}

// AnalyticFunctionCall is a window function call.
type AnalyticFunctionCall struct {
	Typ  Type   `json:"type,omitempty"`
	Name string `json:"name"`
	Args []Expr `json:"args,omitempty"`
}

// SubqueryExpr is a subquery used as an expression.
type SubqueryExpr struct {
	Typ          Type         `json:"type,omitempty"`
	SubqueryType SubqueryType `json:"subquery_type"`
	Subquery     Scan         `json:"subquery"`
}

// MakeStruct constructs a struct value. Field names and order come from
// the struct type; FieldExprs holds the field value expressions in the
// same order.
type MakeStruct struct {
	Typ        Type   `json:"type"`
	FieldExprs []Expr `json:"field_exprs"`
}

// GetStructField accesses one field of a struct-valued expression. The
// field is identified by its index in the operand's struct type; Typ is
// the type of the accessed field.
type GetStructField struct {
	Typ        Type `json:"type,omitempty"`
	Expr       Expr `json:"expr"`
	FieldIndex int  `json:"field_index"`
}

// WithExpr evaluates an expression with scoped local column bindings.
type WithExpr struct {
	Typ         Type             `json:"type,omitempty"`
	Assignments []ComputedColumn `json:"assignments,omitempty"`
	Expr        Expr             `json:"expr"`
}

func (e *Literal) Type() Type               { return e.Typ }
func (e *ColumnRef) Type() Type             { return e.Typ }
func (e *Cast) Type() Type                  { return e.Typ }
func (e *FunctionCall) Type() Type          { return e.Typ }
func (e *AggregateFunctionCall) Type() Type { return e.Typ }
func (e *AnalyticFunctionCall) Type() Type  { return e.Typ }
func (e *SubqueryExpr) Type() Type          { return e.Typ }
func (e *MakeStruct) Type() Type            { return e.Typ }
func (e *GetStructField) Type() Type        { return e.Typ }
func (e *WithExpr) Type() Type              { return e.Typ }

func (*Literal) exprNode()               {}
func (*ColumnRef) exprNode()             {}
func (*Cast) exprNode()                  {}
func (*FunctionCall) exprNode()          {}
func (*AggregateFunctionCall) exprNode() {}
func (*AnalyticFunctionCall) exprNode()  {}
func (*SubqueryExpr) exprNode()          {}
func (*MakeStruct) exprNode()            {}
func (*GetStructField) exprNode()        {}
func (*WithExpr) exprNode()              {}
