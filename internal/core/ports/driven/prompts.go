package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fall back to built-in defaults.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Unknown names return an error; known names always resolve, to a
	// user override when one exists, otherwise to the built-in default.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptAnswerSystem is the system prompt for answer generation.
	// This prompt has no format placeholders.
	PromptAnswerSystem = "answer_system"

	// PromptAnswerUser wraps retrieved context and the question.
	// The template expects two %s placeholders: context, then question.
	PromptAnswerUser = "answer_user"

	// PromptImageCaption instructs the vision model to describe an image.
	// This prompt has no format placeholders.
	PromptImageCaption = "image_caption"

	// PromptVideoFrame instructs the vision model to describe a video frame.
	// This prompt has no format placeholders.
	PromptVideoFrame = "video_frame"
)
