package quality

import (
	"fmt"

	"ContentForge/internal/domain"
)

// Assess evaluates an article against the indexability bar. Rules are checked
// in order and short-circuit on the first failure. Pure and deterministic.
func Assess(article domain.Article, minWordCount int) domain.Verdict {
	if article.WordCount < minWordCount {
		return domain.Verdict{
			ShouldIndex: false,
			Reason:      fmt.Sprintf("Below word count threshold: %d < %d", article.WordCount, minWordCount),
		}
	}

	if len(article.Sources) == 0 {
		return domain.Verdict{ShouldIndex: false, Reason: "No sources provided"}
	}

	return domain.Verdict{ShouldIndex: true, Reason: "Meets quality standards"}
}
