package domain

// Canonical pipeline task names. Derivative content tasks (blog, LinkedIn,
// tweet) are opt-in through the requested output set.
var (
	TaskClassify     = NewInternedString("classify")
	TaskSummarize    = NewInternedString("summarize")
	TaskAnalyze      = NewInternedString("analyze")
	TaskActionPlan   = NewInternedString("action_plan")
	TaskReport       = NewInternedString("report")
	TaskBlogPost     = NewInternedString("blog_post")
	TaskLinkedInPost = NewInternedString("linkedin_post")
	TaskTweet        = NewInternedString("tweet")
)

// ParamCustomInstruction is the task parameter carrying user guidance.
// It participates in the fingerprint of every task it is set on.
const ParamCustomInstruction = "custom_instruction"

// ParamModel is the task parameter naming the generative model.
const ParamModel = "model"

// NewAnalysisPipeline builds the full analysis graph. Each task's params
// include the model and, when set, the custom instruction, so both feed the
// cache fingerprint. The returned graph is validated by the caller after
// pruning to the requested outputs.
func NewAnalysisPipeline(settings Settings) *Graph {
	params := func() map[string]string {
		p := map[string]string{ParamModel: settings.Model}
		if settings.CustomInstruction != "" {
			p[ParamCustomInstruction] = settings.CustomInstruction
		}
		return p
	}

	required := func(names ...InternedString) []Dependency {
		deps := make([]Dependency, len(names))
		for i, n := range names {
			deps[i] = Dependency{Name: n}
		}
		return deps
	}

	g := NewGraph()
	for _, t := range []TaskNode{
		{
			Name:   TaskClassify,
			Params: params(),
		},
		{
			Name:      TaskSummarize,
			DependsOn: required(TaskClassify),
			Params:    params(),
		},
		{
			Name:      TaskAnalyze,
			DependsOn: required(TaskClassify, TaskSummarize),
			Params:    params(),
		},
		{
			Name:      TaskActionPlan,
			DependsOn: required(TaskClassify, TaskSummarize, TaskAnalyze),
			Params:    params(),
		},
		{
			// The report still renders without an action plan; the slot
			// degrades to a MissingInput marker.
			Name: TaskReport,
			DependsOn: append(
				required(TaskClassify, TaskSummarize, TaskAnalyze),
				Dependency{Name: TaskActionPlan, Optional: true},
			),
			Params: params(),
		},
		{
			Name: TaskBlogPost,
			DependsOn: append(
				required(TaskSummarize),
				Dependency{Name: TaskReport, Optional: true},
			),
			Params: params(),
		},
		{
			Name: TaskLinkedInPost,
			DependsOn: append(
				required(TaskSummarize),
				Dependency{Name: TaskReport, Optional: true},
			),
			Params: params(),
		},
		{
			Name: TaskTweet,
			DependsOn: append(
				required(TaskSummarize),
				Dependency{Name: TaskReport, Optional: true},
			),
			Params: params(),
		},
	} {
		// Names are unique by construction, AddTask cannot fail here.
		_ = g.AddTask(&t)
	}

	return g
}
