package plugin

import (
	"github.com/rs/zerolog"

	"github.com/lingmo/lingmoui/internal/logging"
	"github.com/lingmo/lingmoui/internal/scene"
	"github.com/lingmo/lingmoui/internal/settings"
)

// LanguageForwarder calls retranslation callbacks whenever the UI language
// setting changes.
type LanguageForwarder struct {
	log         zerolog.Logger
	sub         *settings.Subscription
	retranslate scene.Signal[string]
}

// NewLanguageForwarder starts watching the language of s.
func NewLanguageForwarder(s *settings.Settings, log zerolog.Logger) *LanguageForwarder {
	f := &LanguageForwarder{log: logging.Component(log, "plugin")}
	f.sub = s.Subscribe(settings.PathLanguage, func(c settings.Change) {
		lang, _ := c.New.(string)
		f.log.Debug().Str("language", lang).Msg("language changed")
		f.retranslate.Emit(lang)
	})
	return f
}

// Connect registers a retranslation callback, typically one per engine.
func (f *LanguageForwarder) Connect(retranslate func(lang string)) scene.Connection {
	return f.retranslate.Connect(retranslate)
}

// Close stops watching the language setting.
func (f *LanguageForwarder) Close() {
	f.sub.Unsubscribe()
}
