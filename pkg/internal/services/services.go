package services

import (
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/pemistahl/lingua-go"
	"gorm.io/gorm"
)

// Service bundles the database handle and the supporting singletons that
// used to live as process globals, so request handlers receive them
// explicitly instead of reaching for ambient state.
type Service struct {
	db       *gorm.DB
	marshal  *marshaler.Marshaler
	detector lingua.LanguageDetector
}

func New(db *gorm.DB, cacheStore store.StoreInterface) *Service {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English,
			lingua.Korean,
			lingua.Japanese,
			lingua.Chinese,
			lingua.Spanish,
		).
		Build()

	return &Service{
		db:       db,
		marshal:  marshaler.New(cache.New[any](cacheStore)),
		detector: detector,
	}
}

func (v *Service) DetectLanguage(content string) string {
	if lang, ok := v.detector.DetectLanguageOf(content); ok {
		return lang.IsoCode639_1().String()
	}
	return ""
}
