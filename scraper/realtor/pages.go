package realtor

import (
	"fmt"
	"realtor-scraper/models"
)

// EffectivePageCount applies the page policy: every page when scrapeAll is
// set, otherwise at most pageCap. total is floored at 1.
func EffectivePageCount(total int, scrapeAll bool, pageCap int) int {
	if total < 1 {
		total = 1
	}
	if scrapeAll {
		return total
	}
	return min(total, pageCap)
}

// BuildPageTasks returns one task per page 1..count. The search URL keeps
// its parameters in the fragment, so the page number is appended verbatim.
func BuildPageTasks(baseURL string, count int) []models.PageTask {
	tasks := make([]models.PageTask, 0, count)
	for n := 1; n <= count; n++ {
		tasks = append(tasks, models.PageTask{
			URL:        fmt.Sprintf("%s&CurrentPage=%d", baseURL, n),
			PageNumber: n,
		})
	}
	return tasks
}
