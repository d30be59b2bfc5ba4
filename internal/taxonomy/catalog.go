package taxonomy

// catalog is the full skill set. Order within a category is the order
// skills cycle through when a learner has no history yet.
var catalog = []Skill{
	// Reading Comprehension
	{
		ID:          "RC-STR",
		Name:        "Passage Structure Recognition",
		Category:    CategoryReadingComprehension,
		Description: "Identifying the organizational pattern of a passage: General→Specific, Common View→Challenge→New View, Phenomenon→Explanations, Claim→Concession→Rebuttal, Old View→Modification",
		Triggers:    []string{"passage organization", "structure", "how the passage is organized"},
	},
	{
		ID:          "RC-FN",
		Name:        "Function Questions",
		Category:    CategoryReadingComprehension,
		Description: "Identifying the role a specific sentence or paragraph plays in the argument (example, counterargument, evidence, transition)",
		Triggers:    []string{"in order to", "serves primarily to", "the author mentions X to"},
	},
	{
		ID:          "RC-INF",
		Name:        "Inference Questions",
		Category:    CategoryReadingComprehension,
		Description: "Drawing conclusions that are necessarily true based on the passage, not just plausible but logically required",
		Triggers:    []string{"it can be inferred", "the author would most likely agree", "suggests that"},
	},
	{
		ID:          "RC-EXC",
		Name:        "EXCEPT/NOT Questions",
		Category:    CategoryReadingComprehension,
		Description: "Finding the one answer that is NOT supported or IS contradicted by the passage (four answers ARE supported)",
		Triggers:    []string{"EXCEPT", "NOT", "all of the following EXCEPT"},
	},
	{
		ID:          "RC-SW",
		Name:        "Strengthen/Weaken Questions",
		Category:    CategoryReadingComprehension,
		Description: "Identifying the argument's assumptions, then finding what would attack or support them",
		Triggers:    []string{"most weaken", "most strengthen", "would undermine", "would support"},
	},
	{
		ID:          "RC-TONE",
		Name:        "Author's Tone/Attitude",
		Category:    CategoryReadingComprehension,
		Description: "Determining the author's stance. Common correct answers: skeptical, qualified approval, cautious optimism, measured criticism. Trap answers: indifferent, hostile, completely supportive (usually too extreme)",
		Triggers:    []string{"author's attitude", "tone of the passage", "author would most likely describe"},
	},
	{
		ID:          "RC-PP",
		Name:        "Primary Purpose",
		Category:    CategoryReadingComprehension,
		Description: "Capturing what the entire passage is about. The answer must cover the WHOLE passage, not just one part",
		Triggers:    []string{"primary purpose", "mainly concerned with", "which of the following best describes"},
	},
	{
		ID:          "RC-VOC",
		Name:        "Vocabulary in Context",
		Category:    CategoryReadingComprehension,
		Description: "Selecting the meaning that fits THIS specific passage context. The correct answer is often NOT the most common definition.",
		Triggers:    []string{"as used in the passage", "most nearly means", "the word X refers to"},
	},

	// Text Completion
	{
		ID:          "TC-CON",
		Name:        "Contrast Signals",
		Category:    CategoryTextCompletion,
		Description: "The blank must contain the OPPOSITE of what's stated in the other clause. The signal word creates an expectation of reversal.",
		Triggers:    []string{"but", "however", "although", "yet", "despite", "while", "whereas", "nevertheless", "notwithstanding", "paradoxically"},
	},
	{
		ID:          "TC-CONT",
		Name:        "Continuation Signals",
		Category:    CategoryTextCompletion,
		Description: "The blank must contain something SIMILAR to or consistent with the other clause. The signal word indicates agreement or extension.",
		Triggers:    []string{"and", "moreover", "indeed", "in fact", "furthermore", "similarly", "likewise", "thus", "therefore"},
	},
	{
		ID:          "TC-ELAB",
		Name:        "Colon/Dash Elaboration",
		Category:    CategoryTextCompletion,
		Description: "A colon or dash signals that what follows defines, explains, or exemplifies what came before. The blank must match the elaboration.",
		Triggers:    []string{":", "—", "that is", "namely"},
	},
	{
		ID:          "TC-CE",
		Name:        "Cause-Effect",
		Category:    CategoryTextCompletion,
		Description: "One part of the sentence is the cause, the other is the effect. The blank must logically complete the causal chain.",
		Triggers:    []string{"because", "since", "therefore", "consequently", "as a result", "leads to", "due to"},
	},
	{
		ID:          "TC-IRO",
		Name:        "Irony/Paradox Markers",
		Category:    CategoryTextCompletion,
		Description: "The blank must contain the OPPOSITE of what would normally be expected. The signal word tells you to reverse your expectation.",
		Triggers:    []string{"ironically", "paradoxically", "curiously", "surprisingly", "unexpectedly"},
	},
	{
		ID:          "TC-DEG",
		Name:        "Degree Intensifiers",
		Category:    CategoryTextCompletion,
		Description: "Words like 'even', 'so X that', 'too X to' intensify the meaning. The blank must be extreme enough to justify the intensifier.",
		Triggers:    []string{"even", "so X that", "too X to", "such X that"},
	},
	{
		ID:          "TC-DN",
		Name:        "Double Negative = Positive",
		Category:    CategoryTextCompletion,
		Description: "Two negatives cancel out. 'Not without merit' = has some merit. 'Hardly insignificant' = significant. Decode the double negative first.",
		Triggers:    []string{"not without", "not un-", "hardly insignificant", "never lacked", "cannot deny"},
	},
	{
		ID:          "TC-MB",
		Name:        "Multi-Blank Coherence",
		Category:    CategoryTextCompletion,
		Description: "In 2-3 blank questions, all blanks must work together to form a coherent sentence. Solve the most constrained blank first, then check if the others fit.",
	},

	// Sentence Equivalence
	{
		ID:          "SE-SYN",
		Name:        "Synonym Pair Recognition",
		Category:    CategorySentenceEquivalence,
		Description: "Find the two answer choices that, when plugged into the sentence, produce sentences with the SAME meaning. They are often (but not always) synonyms.",
	},
	{
		ID:          "SE-CTX",
		Name:        "Context-Driven Selection",
		Category:    CategorySentenceEquivalence,
		Description: "Both selected words must fit the sentence's logic and grammar. Don't just pick synonyms, pick the pair that makes the sentence work.",
	},
	{
		ID:          "SE-TRAP",
		Name:        "SE Trap Avoidance",
		Category:    CategorySentenceEquivalence,
		Description: "Avoid near-synonyms that don't fit context. If 'happy' and 'joyful' are synonyms but only one works grammatically, reject BOTH. Also avoid picking one perfect + one almost-fits.",
	},

	// Trap Recognition (cross-cutting)
	{
		ID:          "TRAP-EXT",
		Name:        "Too Extreme",
		Category:    CategoryTrapRecognition,
		Description: "Answer choices with words like 'always', 'never', 'completely', 'only' are usually wrong.",
		Triggers:    []string{"always", "never", "completely", "only", "entirely", "absolutely"},
	},
	{
		ID:          "TRAP-IRR",
		Name:        "True but Irrelevant",
		Category:    CategoryTrapRecognition,
		Description: "The statement is factually correct but doesn't answer THIS question. It's about something the passage mentions but not what's being asked.",
	},
	{
		ID:          "TRAP-REV",
		Name:        "Reversal",
		Category:    CategoryTrapRecognition,
		Description: "The answer switches the relationship: says A causes B when the passage says B causes A, or attributes a view to the wrong person.",
	},
	{
		ID:          "TRAP-OOS",
		Name:        "Out of Scope",
		Category:    CategoryTrapRecognition,
		Description: "The answer introduces concepts, people, or ideas that the passage never discusses. If it's not in the passage, it can't be the answer.",
	},
	{
		ID:          "TRAP-HALF",
		Name:        "Half-Right",
		Category:    CategoryTrapRecognition,
		Description: "The first part of the answer is correct, but the second part is wrong. Always read the ENTIRE answer choice before selecting it.",
	},
}
