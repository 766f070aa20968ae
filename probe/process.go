package probe

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Runner drives a plan strictly in order and prints a summary of every reply.
type Runner struct {
	client Doer
	out    io.Writer
}

func NewRunner(client Doer, out io.Writer) *Runner {
	return &Runner{client: client, out: out}
}

// Run executes the steps one after another. The first failure of any kind stops
// the sequence and is printed once; Run itself never fails.
func (r *Runner) Run(ctx context.Context, steps []Step) Result {
	var res Result
	fmt.Fprint(r.out, "\n🌐 Testing API Endpoints...\n\n")

	start := time.Now()
	res.Err = r.runAll(ctx, steps, &res)
	if res.Err != nil {
		log.Debugf("probe sequence stopped after %d of %d steps: %v", res.Completed, len(steps), res.Err)
		fmt.Fprintf(r.out, "❌ Error: %v\n\n", res.Err)
		return res
	}

	log.Debugf("probe sequence finished %d steps in %s", res.Completed, time.Since(start))
	fmt.Fprint(r.out, "✅ All API tests passed!\n\n")
	return res
}

func (r *Runner) runAll(ctx context.Context, steps []Step, res *Result) (err error) {
	current := ""
	defer func() {
		if p := recover(); p != nil {
			err = &StepError{Step: current, Err: fmt.Errorf("panic: %v", p)}
		}
	}()

	for _, step := range steps {
		current = step.Name
		if err := r.runStep(ctx, step, res); err != nil {
			return &StepError{Step: step.Name, Err: err}
		}
		res.Completed++
	}
	return nil
}

func (r *Runner) runStep(ctx context.Context, step Step, res *Result) error {
	fmt.Fprintf(r.out, "%s %s\n", step.Marker, step.Title)

	res.Calls++
	resp, err := r.client.Do(ctx, step.Method, step.Path, step.Payload)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "   Status: %d\n", resp.StatusCode)

	body, err := resp.Decode()
	if err != nil {
		return err
	}
	if step.Render != nil {
		if err := step.Render(r.out, body); err != nil {
			return err
		}
	}
	fmt.Fprintln(r.out)
	return nil
}
