package plan

import "fmt"

// User-facing fallback texts. The question generator normally supplies the
// assistant utterance; these cover the welcome flow, rejections and the
// degraded path when generation is unavailable. Dutch, like the product.
const (
	msgWelcome = "Welkom! Samen maken we jouw geboorteplan. Kies maximaal 6 thema's die jij belangrijk vindt."

	msgChooseTheme      = "Kies een thema voor je geboorteplan, of verwijder een eerder gekozen thema."
	msgChooseTopic      = "Kies maximaal 4 onderwerpen binnen het thema %q."
	msgThemeAdded       = "Het thema %q staat in je plan. Kies nu maximaal 4 onderwerpen."
	msgThemeRemoved     = "Het thema %q en de bijbehorende antwoorden zijn verwijderd."
	msgTopicAdded       = "Het onderwerp %q is toegevoegd aan het thema %q."
	msgAnswerRecorded   = "Je antwoord is opgeslagen."
	msgAnswerEdited     = "Je antwoord op %q is aangepast."
	msgThemeDone        = "Alle onderwerpen van %q zijn behandeld. Kies een volgend thema of bekijk je plan."
	msgReview           = "Alle gekozen thema's zijn behandeld. Bekijk je plan en pas antwoorden aan waar nodig."
	msgExported         = "Je geboorteplan is klaar. Je kunt het nu downloaden."
	msgFallbackQuestion = "Wat zijn je wensen rond %q binnen het thema %q?"

	msgRejectThemeLimit   = "Je hebt al 6 thema's gekozen, meer passen er niet in het plan."
	msgRejectDupTheme     = "Het thema %q staat al in je plan."
	msgRejectUnknownTheme = "Het thema %q staat niet in je plan."
	msgRejectTopicLimit   = "Binnen dit thema zijn al 4 onderwerpen gekozen."
	msgRejectDupTopic     = "Het onderwerp %q is al gekozen."
	msgRejectWrongTheme   = "Kies eerst het thema %q voordat je er onderwerpen aan toevoegt."
	msgRejectNoQuestion   = "Er staat nu geen vraag open, kies eerst een onderwerp."
	msgRejectUnknownQA    = "Ik kan geen vraag %q in je plan terugvinden."
	msgRejectEmptyExport  = "Je plan bevat nog geen antwoorden om te exporteren."
	msgRejectStage        = "Dat kan op dit moment niet, volg de stappen in het gesprek."
)

func fmtMsg(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}
