package ports

import (
	"context"

	"gosurvey/domain/survey"
)

// SheetSource fetches survey tabs by worksheet name. The returned tab carries
// no stage; callers assign it.
type SheetSource interface {
	FetchTab(ctx context.Context, name string) (survey.Tab, error)
	// Describe names the source for logs and snapshot metadata
	Describe() string
}

// WorkbookSource is implemented by sources that can read several tabs in one
// round trip, such as a downloaded workbook.
type WorkbookSource interface {
	SheetSource
	FetchTabs(ctx context.Context, names []string) ([]survey.Tab, error)
}
