package merge

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/andlrutt/Emerald-Youth-Hack-for-Nonprofits/feature/waiver/match"
)

// Result is the outcome of one merge run. Output is nil when no input
// decoded successfully; Errors carries one entry per skipped file.
type Result struct {
	Output []byte
	Errors []string
	Merged int
	Pages  int
}

// Merge concatenates the matched waiver documents into a single PDF,
// in list order, each document's pages in their internal order.
//
// A file that fails to decode is recorded in Errors and skipped; the batch
// never aborts on a single bad file. Only when every file fails is the
// output absent.
func Merge(items []match.File) Result {
	conf := model.NewDefaultConfiguration()

	var res Result
	var readers []io.ReadSeeker

	for _, item := range items {
		if len(item.Data) == 0 {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: empty file", item.Name))
			continue
		}

		// Two error tiers: a document that does not parse or validate is
		// "invalid or corrupted"; any later processing failure keeps its
		// own message.
		ctx, err := api.ReadContext(bytes.NewReader(item.Data), conf)
		if err == nil {
			err = api.ValidateContext(ctx)
		}
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: invalid or corrupted PDF file", item.Name))
			continue
		}
		if err := api.OptimizeContext(ctx); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", item.Name, err))
			continue
		}

		readers = append(readers, bytes.NewReader(item.Data))
		res.Merged++
	}

	if res.Merged == 0 {
		return res
	}

	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, conf); err != nil {
		// Every reader validated above, so this is a whole-batch failure.
		res.Errors = append(res.Errors, fmt.Sprintf("merge failed: %v", err))
		res.Merged = 0
		return res
	}

	res.Output = buf.Bytes()
	if n, err := PageCount(res.Output); err == nil {
		res.Pages = n
	}
	return res
}

// PageCount reports the number of pages in a PDF document.
func PageCount(data []byte) (int, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return 0, fmt.Errorf("pdfcpu read: %w", err)
	}
	return ctx.PageCount, nil
}
