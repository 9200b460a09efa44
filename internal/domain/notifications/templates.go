package notifications

import "pet-care-log/internal/ports/mail"

type template struct {
	subject string
	title   string
	body    string
}

var templates = map[Type]template{
	TypeWalk: {
		subject: "Hora del paseo",
		title:   "¡Es hora de pasear!",
		body:    "Tu mascota te espera para su paseo. Un poco de aire fresco les hará bien a los dos.",
	},
	TypeMeal: {
		subject: "Hora de comer",
		title:   "¡Hora de la comida!",
		body:    "Es momento de servir la comida de tu mascota. Recuerda dejarle agua fresca.",
	},
	TypeHealth: {
		subject: "Recordatorio de salud",
		title:   "Cuidado de la salud",
		body:    "Revisa los eventos de salud pendientes de tu mascota: vacunas, desparasitaciones o medicamentos.",
	},
}

var fallbackTemplate = template{
	subject: "Recordatorio de Pet Care Log",
	title:   "Tienes un recordatorio",
	body:    "Tienes un recordatorio pendiente para tu mascota.",
}

// Render arma el contenido del correo para un tipo. Tipos sin plantilla propia
// (general o valores heredados) usan el fallback. No asigna destinatario.
func Render(t Type) mail.Message {
	tpl, ok := templates[t]
	if !ok {
		tpl = fallbackTemplate
	}
	return mail.Message{
		Subject: tpl.subject,
		Text:    tpl.title + "\n\n" + tpl.body,
		HTML:    "<h2>" + tpl.title + "</h2><p>" + tpl.body + "</p>",
	}
}
