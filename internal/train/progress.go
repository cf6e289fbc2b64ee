package train

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// progress draws one bar per epoch with the latest batch loss as its
// description. A nil writer makes every method a no-op.
type progress struct {
	w      io.Writer
	epochs int
	bar    *progressbar.ProgressBar
}

func newProgress(w io.Writer, epochs int) *progress {
	return &progress{w: w, epochs: epochs}
}

func (p *progress) startEpoch(epoch, batches int) {
	if p.w == nil {
		return
	}
	p.bar = progressbar.NewOptions(batches,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetDescription(fmt.Sprintf("Epoch %d/%d", epoch+1, p.epochs)),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(p.w) }),
	)
}

func (p *progress) step(loss float32) {
	if p.bar == nil {
		return
	}
	p.bar.Describe(fmt.Sprintf("Loss: %.6f", loss))
	_ = p.bar.Add(1)
}

func (p *progress) finishEpoch() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
	p.bar = nil
}

func (p *progress) summary(m Metrics) {
	if p.w == nil {
		return
	}
	fmt.Fprintf(p.w, "Epoch %2d/%d: Loss=%.4f, Val Loss=%.4f, Test Loss=%.4f\n",
		m.Epoch+1, p.epochs, m.Loss, m.ValidationLoss, m.TestLoss)
}
