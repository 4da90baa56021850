// Package locale holds the interface strings in every supported language.
package locale

import (
	"fmt"

	"github.com/abhisek/liuk/internal/question"
)

var en = map[string]string{
	"app.name":       "LIUK",
	"app.quit_guard": "An exam is running. Quit anyway? Your answers will be lost.",

	"welcome.tagline":   "Practice for the Life in the UK test",
	"welcome.press_key": "press any key to continue",

	"menu.quiz":    "QUIZ",
	"menu.flash":   "FLASHCARDS",
	"menu.review":  "REVIEW MISTAKES",
	"menu.exam":    "MOCK EXAM",
	"menu.history": "EXAM HISTORY",
	"menu.quit":    "QUIT",

	"home.title":        "Home",
	"home.loading":      "Loading questions...",
	"home.load_failed":  "Failed to load questions: %s",
	"home.no_questions": "No questions available. Check the question file.",
	"home.stats":        "%d questions   %d saved mistakes",
	"home.bank":         "Bank: %s",
	"home.bank_all":     "all topics",

	"practice.title.quiz":   "Quiz",
	"practice.title.flash":  "Flashcards",
	"practice.title.review": "Review",
	"practice.counter":      "Question %d / %d",
	"practice.score":        "Correct: %d   Wrong: %d",
	"practice.review_intro": "Reviewing your wrong answers.",
	"practice.review_empty": "No wrong answers saved yet.",
	"practice.flash_tip":    "Flashcards mode: reveal then self-mark.",
	"practice.correct":      "Correct!",
	"practice.wrong":        "Not quite. The correct answer is highlighted.",
	"practice.answer":       "[Answer] ",

	"summary.title":         "Summary",
	"summary.practice_done": "Practice finished.",
	"summary.flash_done":    "Flashcards finished.",
	"summary.stats":         "Questions: %d   Correct: %d   Wrong: %d",
	"summary.accuracy":      "Accuracy: %.0f%%",
	"summary.next":          "Switch to Review to revisit wrong answers, or start again.",

	"exam.title":          "Mock Exam",
	"exam.ready":          "%d questions. %d minutes. You need %d correct to pass.",
	"exam.ready_lang":     "The language is locked once the exam starts.",
	"exam.begin":          "Press Enter to begin.",
	"exam.none":           "Not enough questions in this bank for an exam.",
	"exam.counter":        "Question %d / %d   Answered %d",
	"exam.time_left":      "Time left %s",
	"exam.pending":        "%d questions are unanswered. Submit anyway?",
	"exam.cancel_confirm": "Cancel the exam? Nothing will be saved.",
	"exam.passed":         "PASSED",
	"exam.failed":         "NOT PASSED",
	"exam.times_up":       "Time is up. Your exam was submitted automatically.",
	"exam.score":          "%d / %d correct",
	"exam.unanswered":     "%d unanswered",
	"exam.pass_mark":      "Pass mark: %d",

	"review.title":          "Exam Review",
	"review.your_answer":    "Your answer: %s",
	"review.no_answer":      "Your answer: (none)",
	"review.correct_answer": "Correct answer: %s",
	"review.jump_prompt":    "Go to question",
	"review.jump_invalid":   "Enter a number from 1 to %d.",
	"review.empty":          "Nothing to review.",

	"history.title":   "Exam History",
	"history.empty":   "No exams taken yet.",
	"history.loading": "Loading history...",
	"history.error":   "Could not load history: %s",
	"history.pass":    "pass",
	"history.fail":    "fail",
	"history.rate":    "%d attempts   %.0f%% passed",
	"history.timed":   "timed out",

	"hint.back":       "Back",
	"hint.quit":       "Quit",
	"hint.select":     "Select",
	"hint.navigate":   "Navigate",
	"hint.lang":       "Language",
	"hint.bank":       "Bank",
	"hint.next":       "Next",
	"hint.prev":       "Previous",
	"hint.submit":     "Submit",
	"hint.skip":       "Skip",
	"hint.clear":      "Clear",
	"hint.reveal":     "Show answer",
	"hint.mark_wrong": "Mark wrong",
	"hint.jump":       "Go to",
	"hint.begin":      "Begin",
	"hint.yes":        "Yes",
	"hint.no":         "No",
	"hint.continue":   "Continue",
	"hint.review":     "Review",
	"hint.cancel":     "Cancel exam",
	"hint.retry":      "Retry",
}

var zh = map[string]string{
	"app.quit_guard": "考试正在进行。确定退出吗？答案将会丢失。",

	"welcome.tagline":   "英国入籍考试（Life in the UK）练习",
	"welcome.press_key": "按任意键继续",

	"menu.quiz":    "练习",
	"menu.flash":   "闪卡",
	"menu.review":  "错题复习",
	"menu.exam":    "模拟考试",
	"menu.history": "考试记录",
	"menu.quit":    "退出",

	"home.title":        "主页",
	"home.loading":      "正在加载题目...",
	"home.load_failed":  "加载题目失败：%s",
	"home.no_questions": "没有可用的题目。请检查题目文件。",
	"home.stats":        "共 %d 题   已保存 %d 道错题",
	"home.bank":         "题库：%s",
	"home.bank_all":     "全部主题",

	"practice.title.quiz":   "练习",
	"practice.title.flash":  "闪卡",
	"practice.title.review": "复习",
	"practice.counter":      "第 %d / %d 题",
	"practice.score":        "正确：%d   错误：%d",
	"practice.review_intro": "正在复习你的错题。",
	"practice.review_empty": "还没有保存的错题。",
	"practice.flash_tip":    "闪卡模式：先查看答案，再自我评判。",
	"practice.correct":      "回答正确！",
	"practice.wrong":        "回答错误。正确答案已高亮显示。",
	"practice.answer":       "[答案] ",

	"summary.title":         "总结",
	"summary.practice_done": "练习结束。",
	"summary.flash_done":    "闪卡结束。",
	"summary.stats":         "题数：%d   正确：%d   错误：%d",
	"summary.accuracy":      "正确率：%.0f%%",
	"summary.next":          "切换到错题复习回顾错题，或重新开始。",

	"exam.title":          "模拟考试",
	"exam.ready":          "共 %d 题，限时 %d 分钟。答对 %d 题即可通过。",
	"exam.ready_lang":     "考试开始后将锁定语言。",
	"exam.begin":          "按 Enter 开始。",
	"exam.none":           "该题库题目不足，无法开始考试。",
	"exam.counter":        "第 %d / %d 题   已答 %d",
	"exam.time_left":      "剩余时间 %s",
	"exam.pending":        "还有 %d 题未作答。仍要交卷吗？",
	"exam.cancel_confirm": "要放弃本次考试吗？不会保存任何记录。",
	"exam.passed":         "通过",
	"exam.failed":         "未通过",
	"exam.times_up":       "时间到，试卷已自动提交。",
	"exam.score":          "答对 %d / %d 题",
	"exam.unanswered":     "%d 题未作答",
	"exam.pass_mark":      "及格线：%d",

	"review.title":          "试卷回顾",
	"review.your_answer":    "你的答案：%s",
	"review.no_answer":      "你的答案：（未作答）",
	"review.correct_answer": "正确答案：%s",
	"review.jump_prompt":    "跳转到题号",
	"review.jump_invalid":   "请输入 1 到 %d 之间的数字。",
	"review.empty":          "没有可回顾的题目。",

	"history.title":   "考试记录",
	"history.empty":   "还没有参加过考试。",
	"history.loading": "正在加载记录...",
	"history.error":   "无法加载记录：%s",
	"history.pass":    "通过",
	"history.fail":    "未通过",
	"history.rate":    "共 %d 次   通过率 %.0f%%",
	"history.timed":   "超时",

	"hint.back":       "返回",
	"hint.quit":       "退出",
	"hint.select":     "选择",
	"hint.navigate":   "移动",
	"hint.lang":       "语言",
	"hint.bank":       "题库",
	"hint.next":       "下一题",
	"hint.prev":       "上一题",
	"hint.submit":     "交卷",
	"hint.skip":       "跳过",
	"hint.clear":      "清除",
	"hint.reveal":     "显示答案",
	"hint.mark_wrong": "标记错题",
	"hint.jump":       "跳转",
	"hint.begin":      "开始",
	"hint.yes":        "是",
	"hint.no":         "否",
	"hint.continue":   "继续",
	"hint.review":     "回顾",
	"hint.cancel":     "放弃考试",
	"hint.retry":      "重试",
}

var dictionaries = map[question.Lang]map[string]string{
	question.English: en,
	question.Chinese: zh,
}

// Dictionary returns the strings for lang. Unknown languages get English.
func Dictionary(lang question.Lang) map[string]string {
	if d, ok := dictionaries[lang]; ok {
		return d
	}
	return en
}

// T returns the string for key in lang, falling back to English and then to
// the key itself.
func T(lang question.Lang, key string) string {
	if s, ok := Dictionary(lang)[key]; ok {
		return s
	}
	if s, ok := en[key]; ok {
		return s
	}
	return key
}

// Tf formats the string for key with args.
func Tf(lang question.Lang, key string, args ...any) string {
	return fmt.Sprintf(T(lang, key), args...)
}
