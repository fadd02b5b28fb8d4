// Package jobexpr resolves a job's computed-field expressions (the
// *Expr string fields on model.Job) into plain integer values before
// validation and scheduling run. It is a narrower sibling of the teacher
// codebase's cwlexpr package: rather than CWL's parameter-reference and
// string-interpolation grammar, each expression here is a bare JavaScript
// expression evaluated in its own goja.Runtime against a small, fixed set
// of numeric bindings.
package jobexpr

import (
	"fmt"
	"math"

	"github.com/dop251/goja"

	"github.com/kjorgen/schedcore/pkg/model"
)

// Context is the set of bindings exposed to a job's expressions.
type Context struct {
	Index        int // the job's position in instance.Jobs
	JobCount     int
	MachineCount int
}

// Evaluator evaluates job expressions. It holds no state between calls;
// each Resolve gets a fresh goja.Runtime, matching the teacher's
// per-evaluation VM lifecycle.
type Evaluator struct{}

// NewEvaluator returns a ready-to-use Evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Resolve evaluates every set *Expr field on job and overwrites its plain
// counterpart with the result, preferring the expression whenever both are
// set. Results are rounded to the nearest integer; a negative result is
// rejected, since every field these expressions feed is a size, duration,
// or offset. A failing or negative expression is reported as an
// invalid-shape *model.Failure whose message contains "expression".
func (e *Evaluator) Resolve(job *model.Job, ctx Context) *model.Failure {
	fields := []struct {
		expr string
		name string
		dst  *int
	}{
		{job.ReleaseTimeExpr, "releaseTimeExpr", &job.ReleaseTime},
		{job.DeliveryTimeExpr, "deliveryTimeExpr", &job.DeliveryTime},
		{job.WaitTimeExpr, "waitTimeExpr", &job.WaitTime},
		{job.MinFragmentSizeExpr, "minFragmentSizeExpr", &job.MinFragmentSize},
	}

	for _, f := range fields {
		if f.expr == "" {
			continue
		}
		v, err := e.evaluate(f.expr, job.Size, ctx)
		if err != nil {
			return model.NewInvalidShape("job %d: %s expression failed: %v", ctx.Index, f.name, err)
		}
		*f.dst = v
	}

	return nil
}

func (e *Evaluator) evaluate(expr string, size int, ctx Context) (int, error) {
	vm := goja.New()
	if err := vm.Set("size", size); err != nil {
		return 0, err
	}
	if err := vm.Set("machineCount", ctx.MachineCount); err != nil {
		return 0, err
	}
	if err := vm.Set("index", ctx.Index); err != nil {
		return 0, err
	}
	if err := vm.Set("jobCount", ctx.JobCount); err != nil {
		return 0, err
	}

	val, err := vm.RunString(expr)
	if err != nil {
		return 0, err
	}
	if val == nil || val == goja.Undefined() {
		return 0, fmt.Errorf("expression returned no value")
	}

	f, ok := toFloat(val.Export())
	if !ok {
		return 0, fmt.Errorf("expression must return a number, got %T", val.Export())
	}

	n := int(math.Round(f))
	if n < 0 {
		return 0, fmt.Errorf("expression result %d is negative", n)
	}
	return n, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
