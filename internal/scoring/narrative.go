package scoring

import (
	"fmt"
	"strings"

	"mindhaven/internal/model"
)

// All narrative content lives in the tables below. Adding a factor means
// adding table entries, never code.

type bucket string

const (
	bucketNormal   bucket = "normal"
	bucketElevated bucket = "elevated"
)

// topFactorLimit caps how many elevated factors the detailed analysis
// names explicitly.
const topFactorLimit = 3

// narrativeFallback is shown when a table entry is missing; lookups
// degrade, they never fail the report.
const narrativeFallback = "该维度的解读内容暂未提供。"

var factorOrder = []model.Factor{
	model.FactorSomatization,
	model.FactorObsessive,
	model.FactorInterpersonal,
	model.FactorDepression,
	model.FactorAnxiety,
	model.FactorHostility,
	model.FactorPhobia,
	model.FactorParanoia,
	model.FactorPsychoticism,
	model.FactorAdditional,
}

var warmIntros = map[string]string{
	LevelHealthy: "谢谢您认真完成了这次自我观察。从结果上看，您近期的整体状态平稳而有韧性，内心的秩序感在好好地支撑着您。愿您继续温柔地对待自己。",
	LevelAtRisk:  "谢谢您愿意诚实地面对自己的感受，这本身就需要很大的勇气。测评显示您最近承担了不少压力，这不是您的错。请先深呼吸，接下来的内容会陪您慢慢看清它们。",
}

var detailedTemplates = map[string]string{
	LevelHealthy: "综合各维度得分来看，您目前没有明显的心理症状信号。情绪的起伏在正常范围内流动，说明您具备不错的自我调节能力。\n\n建议把这份平稳当作一种需要维护的资产：保持规律的睡眠与运动，留出真正属于自己的休息时间，并定期像这次一样做一次内心的体检。",
	LevelAtRisk:  "综合各维度得分来看，您在「%s」方面的得分相对偏高，这通常意味着近期的压力已经开始影响您的情绪和日常体验。\n\n请记住，分数反映的是一段时间内的状态，而不是对您这个人的评判。状态是流动的，被看见的情绪就已经开始被照顾。如果这种感受持续超过两周，或已影响到睡眠与工作，建议寻求专业心理咨询的支持。",
}

type insightKey struct {
	factor model.Factor
	bucket bucket
}

type insightEntry struct {
	status     string
	insight    string
	suggestion string
}

var insightTable = map[insightKey]insightEntry{
	{model.FactorSomatization, bucketNormal}:   {"状态良好", "您的身体感受整体平稳，没有明显的躯体化不适信号，身心之间的沟通是通畅的。", "继续保持规律作息和适度运动，身体会持续回馈您的照顾。"},
	{model.FactorSomatization, bucketElevated}: {"需要关注", "您可能经常被头痛、乏力、胸闷等身体不适困扰。这些感受是真实的，它们常常是情绪压力借身体发出的信号。", "在完成必要的医学检查之外，也请留意近期的压力来源，尝试腹式呼吸、热水澡和温和的伸展来安抚身体。"},
	{model.FactorObsessive, bucketNormal}:      {"状态良好", "您的思维灵活，没有被反复的念头或仪式性行为过多占据，注意力能够自如地流动。", "偶尔的反复确认是正常的，不必苛责自己，保持现在的节奏就很好。"},
	{model.FactorObsessive, bucketElevated}:    {"需要关注", "一些不必要的念头可能反复盘旋，让您忍不住检查、回想，消耗了大量心理能量。", "试着为担忧设定一个「专属时段」，其余时间温和地把注意力拉回手头的事情上；正念练习对此很有帮助。"},
	{model.FactorInterpersonal, bucketNormal}:  {"状态良好", "您在人际交往中整体感到自在，能够比较从容地表达自己、接纳他人的目光。", "珍惜让您感到安全的关系，它们是心理韧性最可靠的来源。"},
	{model.FactorInterpersonal, bucketElevated}: {"需要关注", "您可能在与人相处时容易紧张、自我怀疑，担心自己不够好或不被喜欢。这种敏感背后往往是对关系的在乎。", "试着把注意力从「别人怎么看我」移到「我此刻想表达什么」，并允许自己在小范围的安全关系里练习真实。"},
	{model.FactorDepression, bucketNormal}:     {"状态良好", "您的情绪底色是明亮的，对生活保有兴趣和动力，低落感在可自然恢复的范围内。", "继续做那些让您感到有意义的小事，它们是情绪最好的养料。"},
	{model.FactorDepression, bucketElevated}:   {"需要关注", "您可能时常感到低落、疲惫，对原本喜欢的事提不起兴趣。这些感受值得被认真对待，而不是被一句「想开点」打发。", "请降低对自己的要求，从最小的行动开始（出门走十分钟、给朋友发条消息）。若低落持续两周以上，请考虑寻求专业帮助。"},
	{model.FactorAnxiety, bucketNormal}:        {"状态良好", "您的紧张和担忧处于健康范围，它们更多是提醒而非负担，说明您的警觉系统运作良好。", "在忙碌的间隙给自己安排「什么都不做」的五分钟，让神经系统定期归零。"},
	{model.FactorAnxiety, bucketElevated}:      {"需要关注", "您可能经常感到心慌、坐立不安，甚至无缘无故地紧张。焦虑是身体在提醒您：承载的不确定感已经偏多了。", "把模糊的担心写下来，区分「能行动的」与「只能接纳的」；规律的有氧运动和稳定的入睡时间能显著降低焦虑的基线。"},
	{model.FactorHostility, bucketNormal}:      {"状态良好", "您能够平和地处理愤怒与分歧，情绪的表达有出口也有分寸。", "继续保持这种表达的平衡，愤怒被好好使用时，是维护边界的健康力量。"},
	{model.FactorHostility, bucketElevated}:    {"需要关注", "您可能容易被激惹，心里积着想争论、想摔东西的冲动。愤怒往往是更深处的委屈或无力在寻找出口。", "在情绪上头的瞬间先离开现场十分钟；平时通过运动、书写等方式定期「放掉」积压的情绪，而不是等它溢出来。"},
	{model.FactorPhobia, bucketNormal}:         {"状态良好", "您对特定场所、人群的恐惧感很低，活动空间没有被恐惧压缩。", "保持探索的习惯，世界越走越大，安全感也会随之扩展。"},
	{model.FactorPhobia, bucketElevated}:       {"需要关注", "某些场所或情境可能让您明显不安，甚至开始回避。回避会短暂缓解恐惧，但也会让它的领地慢慢扩大。", "不必强迫自己「直面恐惧」，可以从最轻微的情境开始，小步地、有陪伴地接近，每一次停留都是一次胜利。"},
	{model.FactorParanoia, bucketNormal}:       {"状态良好", "您对他人保有基本的信任，能够客观地看待分歧与评价。", "信任是流动的，继续用开放的沟通去滋养它。"},
	{model.FactorParanoia, bucketElevated}:     {"需要关注", "您可能时常觉得他人不可信、被针对或不被公正对待。这种警觉往往来自曾经真实的受伤经历。", "当怀疑升起时，试着写下支持与反驳它的证据各三条；也给值得的人一些小的信任机会，让新经验修正旧预期。"},
	{model.FactorPsychoticism, bucketNormal}:   {"状态良好", "您与现实、与他人的联结是稳固的，没有明显的疏离感或异常体验。", "继续维护那些让您感到「被接住」的关系和日常仪式感。"},
	{model.FactorPsychoticism, bucketElevated}: {"需要关注", "您可能时常感到与人群有一层隔膜，甚至即使在人群中也觉得孤单，或被一些陌生的念头打扰。", "这些体验在高压、长期孤独下并不罕见。请优先恢复规律的睡眠，并主动与信任的人保持联结；若体验持续或加重，请尽快寻求专业评估。"},
	{model.FactorAdditional, bucketNormal}:     {"状态良好", "您的睡眠和饮食节律整体稳定，这是情绪稳定最基础的地基。", "继续守护固定的入睡时间和好好吃饭的习惯。"},
	{model.FactorAdditional, bucketElevated}:   {"需要关注", "您的睡眠或饮食可能出现了波动——难以入睡、易醒或胃口失调。它们通常是压力最先敲响的门铃。", "睡前一小时放下屏幕，用固定的小仪式（热水、灯光、纸质书）提示身体进入休息状态；饮食尽量定时，哪怕少量。"},
}

func warmIntroFor(level string) string {
	if text, ok := warmIntros[level]; ok {
		return text
	}
	return narrativeFallback
}

func detailedFor(level string, top []model.Factor) string {
	tmpl, ok := detailedTemplates[level]
	if !ok {
		return narrativeFallback
	}
	if level == LevelAtRisk {
		if len(top) == 0 {
			return fmt.Sprintf(tmpl, "整体压力")
		}
		names := make([]string, len(top))
		for i, f := range top {
			names[i] = string(f)
		}
		return fmt.Sprintf(tmpl, strings.Join(names, "、"))
	}
	return tmpl
}

func lookupInsight(f model.Factor, b bucket) model.FactorInsight {
	entry, ok := insightTable[insightKey{f, b}]
	if !ok {
		return model.FactorInsight{
			Factor:     f,
			Status:     "暂无解读",
			Insight:    narrativeFallback,
			Suggestion: narrativeFallback,
		}
	}
	return model.FactorInsight{
		Factor:     f,
		Status:     entry.status,
		Insight:    entry.insight,
		Suggestion: entry.suggestion,
	}
}
