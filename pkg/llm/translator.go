package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-pkgz/lgr"
)

// languageNames maps steam language codes to names used in prompts
var languageNames = map[string]string{
	"schinese":   "Simplified Chinese",
	"tchinese":   "Traditional Chinese",
	"japanese":   "Japanese",
	"koreana":    "Korean",
	"thai":       "Thai",
	"bulgarian":  "Bulgarian",
	"czech":      "Czech",
	"danish":     "Danish",
	"german":     "German",
	"english":    "English",
	"spanish":    "Spanish - Spain",
	"latam":      "Spanish - Latin America",
	"greek":      "Greek",
	"french":     "French",
	"italian":    "Italian",
	"indonesian": "Indonesian",
	"hungarian":  "Hungarian",
	"dutch":      "Dutch",
	"norwegian":  "Norwegian",
	"polish":     "Polish",
	"portuguese": "Portuguese - Portugal",
	"brazilian":  "Portuguese - Brazil",
	"romanian":   "Romanian",
	"russian":    "Russian",
	"finnish":    "Finnish",
	"swedish":    "Swedish",
	"turkish":    "Turkish",
	"vietnamese": "Vietnamese",
	"ukrainian":  "Ukrainian",
}

// LanguageName returns human readable name of a steam language code, the code itself if unknown
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

const translatorSystemPrompt = `You are a professional translator specialized in translating game reviews from %s to English. ` +
	`The input is a Steam review text. Translate it to English preserving the original tone, style and intent. ` +
	`If the text is very short, contains slang or typos, translate it directly to the best of your ability. ` +
	`Do not add commentary about the input quality or explain difficulties in translation.`

// Translator translates review texts into english
type Translator struct {
	llm   Completer
	cache Cache
}

// NewTranslator makes a translator, cache is optional
func NewTranslator(llm Completer, cache Cache) *Translator {
	return &Translator{llm: llm, cache: cache}
}

// Translate returns the english translation as ResultSuccess text. Empty input is rejected
// without calling the llm. Only successful translations are cached.
func (t *Translator) Translate(ctx context.Context, text, language string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Kind: ResultAPIError, Err: ErrEmptyText, Model: t.llm.Model()}
	}

	key := CacheKey(language, text)
	if t.cache != nil {
		if cached, ok := t.cache.Get(ctx, key); ok {
			lgr.Printf("[DEBUG] cached translation for %s text", language)
			return Result{Kind: ResultSuccess, Text: cached, Model: t.llm.Model()}
		}
	}

	name := LanguageName(language)
	res := t.llm.Complete(ctx, Request{
		System:      fmt.Sprintf(translatorSystemPrompt, name),
		Prompt:      fmt.Sprintf("Translate this %s Steam review text to English: %s", name, text),
		Temperature: 0.3,
	})
	if res.Kind == ResultSuccess && t.cache != nil {
		t.cache.Set(ctx, key, res.Text)
	}
	return res
}
