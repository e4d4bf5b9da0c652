package fill

import (
	"context"
	"sync"
)

// FillAll fills several target languages concurrently against the same
// reference bundle. Each language is one goroutine; the provider is shared,
// so wrap it with a RateLimitedProvider when fanning out.
func (f *Filler) FillAll(ctx context.Context, loader BundleLoader, sourceLang string, targetLangs []string) (map[string]*Result, map[string]error) {
	reference, err := loader.Load(sourceLang)
	if err != nil {
		errs := make(map[string]error, len(targetLangs))
		for _, lang := range targetLangs {
			errs[lang] = err
		}
		return nil, errs
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]*Result, len(targetLangs))
		errs    = make(map[string]error)
	)

	for _, lang := range targetLangs {
		wg.Add(1)
		go func(lang string) {
			defer wg.Done()

			target, err := loader.Load(lang)
			if err != nil {
				// A missing language directory is an empty bundle: fill
				// everything from scratch.
				target = emptyBundle()
			}

			result, err := f.Fill(ctx, reference, target, sourceLang, lang)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs[lang] = err
				return
			}
			results[lang] = result
		}(lang)
	}

	wg.Wait()
	return results, errs
}
