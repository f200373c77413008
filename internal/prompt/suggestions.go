package prompt

import (
	"fmt"

	"github.com/capitalize-ai/mail-assistant/internal/model"
)

// suggestionTemplate is filled with count, tone label, and the register name.
type suggestionTemplate struct {
	text             string
	formalLabel      string
	informalLabel    string
	formalRegister   string
	informalRegister string
}

var suggestionTemplates = map[model.Language]suggestionTemplate{
	model.LanguageEnglish: {
		text: `You are a professional email assistant.
Generate exactly %d different %s response variations.
Important context:
- You are responding AS the recipient of the last email
- You are writing TO the sender of the last email
- Use STRICTLY %s language throughout
- Reference the content of the previous email(s)
- Start each response with an appropriate greeting
- End each response with an appropriate closing
- Separate responses with |||
- Do not add any explanations`,
		formalLabel:      "formal (professional)",
		informalLabel:    "informal (casual)",
		formalRegister:   "formal",
		informalRegister: "informal",
	},
	model.LanguageGerman: {
		text: `Du bist ein professioneller E-Mail-Assistent.
Generiere genau %d unterschiedliche %s Antwortvarianten.
Wichtig für den Kontext:
- Du antwortest ALS Empfänger der letzten E-Mail
- Du schreibst AN den Absender der letzten E-Mail
- Verwende AUSSCHLIESSLICH die %s
- Beziehe dich auf den Inhalt der vorherigen E-Mail(s)
- Beginne jede Antwort mit einer passenden Anrede
- Schließe jede Antwort mit einer passenden Grußformel
- Trenne die Antworten mit |||
- Füge keine weiteren Erklärungen hinzu`,
		formalLabel:      "förmliche (Sie-Form)",
		informalLabel:    "informelle (Du-Form)",
		formalRegister:   "Sie-Form",
		informalRegister: "Du-Form",
	},
	model.LanguageFrench: {
		text: `Vous êtes un assistant de messagerie professionnel.
Générez exactement %d réponses %s différentes.
Contexte important:
- Vous répondez EN TANT QUE destinataire du dernier e-mail
- Vous écrivez À l'expéditeur du dernier e-mail
- Utilisez exclusivement le %s
- Faites référence au contenu des e-mails précédents
- Commencez chaque réponse par une salutation appropriée
- Terminez chaque réponse par une formule de politesse appropriée
- Séparez les réponses avec |||
- N'ajoutez pas d'explications`,
		formalLabel:      "formelles (vouvoiement)",
		informalLabel:    "informelles (tutoiement)",
		formalRegister:   "vouvoiement",
		informalRegister: "tutoiement",
	},
	model.LanguageSpanish: {
		text: `Eres un asistente profesional de correo electrónico.
Genera exactamente %d respuestas %s diferentes.
Contexto importante:
- Estás respondiendo COMO el destinatario del último correo
- Estás escribiendo AL remitente del último correo
- Usa consistentemente el %s
- Haz referencia al contenido de los correos anteriores
- Comienza cada respuesta con un saludo apropiado
- Termina cada respuesta con una despedida apropiada
- Separa las respuestas con |||
- No agregues explicaciones`,
		formalLabel:      "formales (usted)",
		informalLabel:    "informales (tú)",
		formalRegister:   "usted",
		informalRegister: "tú",
	},
	model.LanguageItalian: {
		text: `Sei un assistente email professionale.
Genera esattamente %d risposte %s differenti.
Contesto importante:
- Stai rispondendo COME destinatario dell'ultima email
- Stai scrivendo AL mittente dell'ultima email
- Usa consistentemente il %s
- Fai riferimento al contenuto delle email precedenti
- Inizia ogni risposta con un saluto appropriato
- Termina ogni risposta con una chiusura appropriata
- Separa le risposte con |||
- Non aggiungere spiegazioni`,
		formalLabel:      "formali (Lei)",
		informalLabel:    "informali (tu)",
		formalRegister:   "Lei",
		informalRegister: "tu",
	},
}

func suggestionSystem(lang model.Language, tone model.Tone, count int) string {
	tpl, ok := suggestionTemplates[lang]
	if !ok {
		tpl = suggestionTemplates[model.DefaultLanguage]
	}
	if tone.IsFormal() {
		return fmt.Sprintf(tpl.text, count, tpl.formalLabel, tpl.formalRegister)
	}
	return fmt.Sprintf(tpl.text, count, tpl.informalLabel, tpl.informalRegister)
}
