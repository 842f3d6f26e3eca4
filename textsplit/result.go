package textsplit

import (
	"github.com/Alfex4936/textsplit/internal/model"
)

// NewResult materializes views into the JSON model. limit > 0 keeps only the
// first limit spans; ViewCount always reports the full count.
func NewResult(views *Views, sep []byte, limit int) (*model.Result, error) {
	if err := views.check(); err != nil {
		return nil, err
	}

	n := views.Len()
	if limit > 0 && limit < n {
		n = limit
	}
	res := &model.Result{
		Separator: string(sep),
		ByteCount: views.Source().Len(),
		ViewCount: views.Len(),
		Truncated: n < views.Len(),
		Views:     make([]model.Span, 0, n),
	}
	for i, b := range views.All() {
		if i == n {
			break
		}
		v := views.At(i)
		res.Views = append(res.Views, model.Span{
			Idx:   i,
			Begin: v.Begin,
			End:   v.End,
			Text:  string(b),
		})
	}
	return res, nil
}
