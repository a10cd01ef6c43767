package usecase

import "fmt"

// answerSystemPrompt constrains the generator to the retrieved context.
// It is deliberately strict: answers must cite the provided articles and
// never invent legal content.
const answerSystemPrompt = `Eres un asistente legal especializado en derecho peruano.

Tu tarea es responder preguntas legales usando EXCLUSIVAMENTE el contexto legal proporcionado.

Reglas estrictas:
1. Responde SOLO con base en los artículos del contexto. No inventes artículos, leyes ni números.
2. Cita siempre el artículo y la fuente que sustenta cada afirmación (por ejemplo: "según el Artículo 2 de la Constitución...").
3. Si el contexto no contiene información suficiente para responder, dilo explícitamente y recomienda consultar con un abogado especializado.
4. Usa lenguaje claro y accesible para personas sin formación jurídica.
5. No des opiniones personales ni consejos que excedan lo que dicen los artículos citados.`

// BuildAnswerPrompt assembles the user-turn prompt from the rendered legal
// context and the ORIGINAL user question (never the rewritten variants).
func BuildAnswerPrompt(context, originalQuery string) string {
	return fmt.Sprintf(`CONTEXTO LEGAL:
%s

PREGUNTA DEL USUARIO:
%s

Responde la pregunta usando únicamente el contexto legal anterior, citando los artículos relevantes.`, context, originalQuery)
}
