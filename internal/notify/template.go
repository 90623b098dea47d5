package notify

import "fmt"

// ConfirmationEmail renders the French confirmation message for a
// completed simulation. Eligible and ineligible verdicts get different
// templates.
func ConfirmationEmail(firstName, lastName string, eligible bool, loanAmount int, reason string) (subject, htmlBody string) {
	if eligible {
		amountLine := ""
		if loanAmount > 0 {
			amountLine = fmt.Sprintf("<p>Montant estimé du PTZ : %d €</p>", loanAmount)
		}
		return "Confirmation de votre simulation PTZ", fmt.Sprintf(`<h1>Bonjour %s %s,</h1>
<p>Nous avons bien reçu votre simulation de Prêt à Taux Zéro (PTZ).</p>
<p>Félicitations ! Selon nos calculs, vous êtes éligible au PTZ.</p>
%s<p>Un conseiller va étudier votre dossier et vous recontacter prochainement pour vous accompagner dans vos démarches.</p>
<p>Cordialement,<br>L'équipe PTZ</p>`, firstName, lastName, amountLine)
	}

	if reason == "" {
		reason = "Critères d'éligibilité non remplis"
	}
	return "Résultat de votre simulation PTZ", fmt.Sprintf(`<h1>Bonjour %s %s,</h1>
<p>Nous avons bien reçu votre simulation de Prêt à Taux Zéro (PTZ).</p>
<p>Malheureusement, selon nos calculs, vous n'êtes pas éligible au PTZ pour la raison suivante :</p>
<p>%s</p>
<p>Si vous souhaitez plus d'informations ou discuter de solutions alternatives, n'hésitez pas à nous contacter.</p>
<p>Cordialement,<br>L'équipe PTZ</p>`, firstName, lastName, reason)
}
