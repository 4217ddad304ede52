package prompt

import (
	"fmt"
	"strings"
)

// Tool is the closed set of editor operations the WordPress plugin can
// request. Anything outside the four names fails ParseTool, so handlers and
// the worker never reach Build with an unknown operation.
type Tool int

const (
	ToolNotesIntoPublishable Tool = iota
	ToolGenerateReport
	ToolReEditReport
	ToolSummarizingReport
)

const (
	nameNotesIntoPublishable = "notes_into_publishable_material"
	nameGenerateReport       = "generate_report"
	nameReEditReport         = "re_edit_report"
	nameSummarizingReport    = "summarizing_report"
)

func ParseTool(name string) (Tool, error) {
	switch strings.TrimSpace(name) {
	case nameNotesIntoPublishable:
		return ToolNotesIntoPublishable, nil
	case nameGenerateReport:
		return ToolGenerateReport, nil
	case nameReEditReport:
		return ToolReEditReport, nil
	case nameSummarizingReport:
		return ToolSummarizingReport, nil
	default:
		return 0, fmt.Errorf("unknown tool %q", name)
	}
}

func (t Tool) String() string {
	switch t {
	case ToolNotesIntoPublishable:
		return nameNotesIntoPublishable
	case ToolGenerateReport:
		return nameGenerateReport
	case ToolReEditReport:
		return nameReEditReport
	case ToolSummarizingReport:
		return nameSummarizingReport
	}
	return fmt.Sprintf("tool(%d)", int(t))
}

// EditorSystemPrompt frames every editor completion call. The working
// language of the deployment is Arabic; the text is data, not logic.
const EditorSystemPrompt = `أنت محرر صحفي محترف تعمل لدى وكالة أنباء عربية. التزم دائمًا بالدقة والموضوعية وأسلوب الصحافة المكتوبة، وأعد النص المطلوب فقط دون أي شرح إضافي.`

// Input carries the already-resolved free text plus the request metadata.
// Validation (non-empty text, mandatory date) is the caller's job.
type Input struct {
	Text        string
	Date        string
	JournalName string
}

// Build returns the instruction string for one editor operation. The switch
// is exhaustive over Tool.
func Build(tool Tool, in Input) string {
	switch tool {
	case ToolNotesIntoPublishable:
		return buildNotesIntoPublishable(in)
	case ToolGenerateReport:
		return buildGenerateReport(in)
	case ToolReEditReport:
		return buildReEditReport(in)
	case ToolSummarizingReport:
		return buildSummarizingReport(in)
	}
	return ""
}

func buildNotesIntoPublishable(in Input) string {
	var sb strings.Builder
	sb.WriteString("أعد صياغة الملاحظات الميدانية التالية لتتحول إلى مادة صحفية جاهزة للنشر، بعنوان رئيسي قوي وجذاب.\n")
	sb.WriteString(fmt.Sprintf("ضع التاريخ %s أسفل العنوان مباشرة.\n", in.Date))
	if in.JournalName != "" {
		sb.WriteString(fmt.Sprintf("اذكر اسم الجهة %s إلى جانب التاريخ أسفل العنوان.\n", in.JournalName))
	}
	sb.WriteString("\nالملاحظات:\n")
	sb.WriteString(in.Text)
	return sb.String()
}

func buildGenerateReport(in Input) string {
	return fmt.Sprintf(
		"اكتب تقريرًا صحفيًا احترافيًا انطلاقًا من معلومات الحدث التالية، بعنوان رئيسي واضح وسطر تاريخ %s أسفل العنوان مباشرة، مع ترتيب المعلومات بحسب أهميتها.\n\nمعلومات الحدث:\n%s",
		in.Date, in.Text,
	)
}

func buildReEditReport(in Input) string {
	return fmt.Sprintf(
		"أعد تحرير التقرير التالي بمقدمة أقوى وأسلوب صحفي أوضح، مع الحفاظ على جميع الحقائق والأسماء والأرقام كما وردت.\n\nالتقرير:\n%s",
		in.Text,
	)
}

func buildSummarizingReport(in Input) string {
	return fmt.Sprintf(
		"لخّص التقرير التالي وكيّفه ليتوافق مع الأسلوب التحريري للمطبوعة المستهدفة، في نص مكثّف يحافظ على المعلومات الجوهرية ويصلح للنشر مباشرة.\n\nالتقرير:\n%s",
		in.Text,
	)
}
