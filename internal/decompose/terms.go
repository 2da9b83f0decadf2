package decompose

// Rule keyword sets, matched case-insensitively on word boundaries. These are
// deliberately narrower than the classifier's vocabularies: the classifier
// decides whether to split at all, these decide what the split looks like.

// researchTerms imply investigation or best-practice gathering.
var researchTerms = []string{
	"research",
	"investigate",
	"explore",
	"best practice",
	"compare",
	"evaluate options",
	"state of the art",
}

// analysisTerms imply reviewing or assessing an existing system.
var analysisTerms = []string{
	"analyze",
	"analyse",
	"assess",
	"audit",
	"review",
	"existing",
	"current system",
	"legacy",
}

// buildTerms imply building something.
var buildTerms = []string{
	"build",
	"implement",
	"create",
	"develop",
	"add",
	"write",
	"set up",
	"setup",
}

// frontendTerms are build sub-signals for user-facing work.
var frontendTerms = []string{
	"frontend",
	"front-end",
	"ui",
	"user interface",
	"react",
	"vue",
	"angular",
	"page",
	"screen",
	"dashboard",
	"css",
}

// backendTerms are build sub-signals for API/server work.
var backendTerms = []string{
	"backend",
	"back-end",
	"api",
	"server",
	"endpoint",
	"service",
	"rest",
	"grpc",
	"graphql",
}

// databaseTerms are build sub-signals for data-model work.
var databaseTerms = []string{
	"database",
	"schema",
	"sql",
	"postgres",
	"mysql",
	"sqlite",
	"data model",
	"storage",
	"persistence",
}

// validationTerms imply testing or verification.
var validationTerms = []string{
	"test",
	"tests",
	"testing",
	"verify",
	"validate",
	"validation",
	"qa",
	"quality assurance",
	"coverage",
}

// documentationTerms imply documentation work.
var documentationTerms = []string{
	"document",
	"documentation",
	"docs",
	"readme",
	"guide",
	"manual",
}
