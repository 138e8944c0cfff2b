package bank

import "mindhaven/internal/model"

// Static SCL-90 catalog data. Every item shares the same five options;
// the loader in bank.go attaches them.

var defaultOptions = []model.Option{
	{Text: "没有", Score: 0},
	{Text: "很轻", Score: 1},
	{Text: "中等", Score: 2},
	{Text: "偏重", Score: 3},
	{Text: "严重", Score: 4},
}

var factorDescriptions = map[model.Factor]string{
	model.FactorSomatization:  "身体不适感",
	model.FactorObsessive:     "无法摆脱的无意义思想与行为",
	model.FactorInterpersonal: "人际交往中的自卑与不自在",
	model.FactorDepression:    "情绪低落与动力缺乏",
	model.FactorAnxiety:       "烦躁、紧张与惊恐体验",
	model.FactorHostility:     "愤怒的思想、情感及行为",
	model.FactorPhobia:        "对特定场所或社交的恐惧",
	model.FactorParanoia:      "猜疑与敌意的思维方式",
	model.FactorPsychoticism:  "疏离感与异常体验",
	model.FactorAdditional:    "睡眠与饮食状况",
}

type item struct {
	id     int
	text   string
	factor model.Factor
}

var scl90Items = []item{
	{1, "头痛", model.FactorSomatization},
	{2, "神经过敏，心中不踏实", model.FactorAnxiety},
	{3, "头脑中有不必要的想法或字句盘旋", model.FactorObsessive},
	{4, "头晕或晕倒", model.FactorSomatization},
	{5, "对异性的兴趣减退", model.FactorDepression},
	{6, "对旁人责备求全", model.FactorInterpersonal},
	{7, "感到别人能控制自己的思想", model.FactorPsychoticism},
	{8, "责怪别人制造麻烦", model.FactorParanoia},
	{9, "忘性大", model.FactorObsessive},
	{10, "担心自己的衣饰整齐及仪态的端正", model.FactorObsessive},
	{11, "容易烦恼和激动", model.FactorHostility},
	{12, "胸痛", model.FactorSomatization},
	{13, "害怕空旷的场所或街道", model.FactorPhobia},
	{14, "感到自己的精力下降，活动减慢", model.FactorDepression},
	{15, "想结束自己的生命", model.FactorDepression},
	{16, "听到旁人听不到的声音", model.FactorPsychoticism},
	{17, "发抖", model.FactorAnxiety},
	{18, "感到大多数人都不可信任", model.FactorParanoia},
	{19, "胃口不好", model.FactorAdditional},
	{20, "容易哭泣", model.FactorDepression},
	{21, "同异性相处时感到害羞不自在", model.FactorInterpersonal},
	{22, "感到受骗、中了圈套或有人想抓住您", model.FactorDepression},
	{23, "无缘无故地突然感到害怕", model.FactorAnxiety},
	{24, "自己不能控制地大发脾气", model.FactorHostility},
	{25, "怕单独出门", model.FactorPhobia},
	{26, "经常责怪自己", model.FactorDepression},
	{27, "腰痛", model.FactorSomatization},
	{28, "感到难以完成任务", model.FactorObsessive},
	{29, "感到孤独", model.FactorDepression},
	{30, "感到苦闷", model.FactorDepression},
	{31, "过分担忧", model.FactorDepression},
	{32, "对事物不感兴趣", model.FactorDepression},
	{33, "感到害怕", model.FactorAnxiety},
	{34, "您的感情容易受到伤害", model.FactorInterpersonal},
	{35, "旁人能知道自己的私下想法", model.FactorPsychoticism},
	{36, "感到别人不理解您、不同情您", model.FactorInterpersonal},
	{37, "感到人们对您不友好，不喜欢您", model.FactorInterpersonal},
	{38, "做事必须做得很慢以保证做得正确", model.FactorObsessive},
	{39, "心跳得很厉害", model.FactorAnxiety},
	{40, "恶心或胃部不舒服", model.FactorSomatization},
	{41, "感到比不上他人", model.FactorInterpersonal},
	{42, "肌肉酸痛", model.FactorSomatization},
	{43, "感到有人在监视您、谈论您", model.FactorParanoia},
	{44, "难以入睡", model.FactorAdditional},
	{45, "做事必须反复检查", model.FactorObsessive},
	{46, "难以作出决定", model.FactorObsessive},
	{47, "怕乘电车、公共汽车、地铁或火车", model.FactorPhobia},
	{48, "呼吸有困难", model.FactorSomatization},
	{49, "一阵阵发冷或发热", model.FactorSomatization},
	{50, "因为感到害怕而避开某些东西、场合或活动", model.FactorPhobia},
	{51, "脑子变空了", model.FactorObsessive},
	{52, "身体发麻或刺痛", model.FactorSomatization},
	{53, "喉咙有梗塞感", model.FactorSomatization},
	{54, "感到前途没有希望", model.FactorDepression},
	{55, "不能集中注意力", model.FactorObsessive},
	{56, "感到身体的某一部分软弱无力", model.FactorSomatization},
	{57, "感到紧张或容易紧张", model.FactorAnxiety},
	{58, "感到手或脚发重", model.FactorSomatization},
	{59, "想到死亡的事", model.FactorAdditional},
	{60, "吃得太多", model.FactorAdditional},
	{61, "当别人看着您或谈论您时感到不自在", model.FactorInterpersonal},
	{62, "有一些不属于您自己的想法", model.FactorPsychoticism},
	{63, "有想打人或伤害他人的冲动", model.FactorHostility},
	{64, "醒得太早", model.FactorAdditional},
	{65, "必须反复洗手、点数", model.FactorObsessive},
	{66, "睡得不稳不深", model.FactorAdditional},
	{67, "有想摔坏或破坏东西的想法", model.FactorHostility},
	{68, "有一些别人没有的想法", model.FactorParanoia},
	{69, "感到对别人神经过敏", model.FactorInterpersonal},
	{70, "在商店或电影院等人多的地方感到不自在", model.FactorPhobia},
	{71, "感到任何事情都很困难", model.FactorDepression},
	{72, "一阵阵恐惧或惊恐", model.FactorAnxiety},
	{73, "感到公共场合吃东西很不舒服", model.FactorInterpersonal},
	{74, "经常与人争论", model.FactorHostility},
	{75, "单独一人时神经很紧张", model.FactorPhobia},
	{76, "别人对您的成绩没有作出恰当的评价", model.FactorParanoia},
	{77, "即使和别人在一起也感到孤单", model.FactorPsychoticism},
	{78, "感到坐立不安心神不定", model.FactorAnxiety},
	{79, "感到自己没有什么价值", model.FactorDepression},
	{80, "感到熟悉的东西变成陌生或不像是真的", model.FactorAnxiety},
	{81, "大叫或摔东西", model.FactorHostility},
	{82, "害怕会在公共场合昏倒", model.FactorPhobia},
	{83, "感到别人想占您的便宜", model.FactorParanoia},
	{84, "为一些有关性的想法而很苦恼", model.FactorPsychoticism},
	{85, "您认为应该因为自己的过错而受到惩罚", model.FactorPsychoticism},
	{86, "感到要很快把事情做完", model.FactorAnxiety},
	{87, "感到自己的身体有严重问题", model.FactorPsychoticism},
	{88, "从未感到和其他人很接近", model.FactorPsychoticism},
	{89, "感到自己有罪", model.FactorAdditional},
	{90, "感到自己的脑子有毛病", model.FactorPsychoticism},
}

// Fixed mode subsets, ordered by question id, identical across sessions.
var (
	subset15 = []int{1, 2, 3, 5, 6, 7, 9, 11, 18, 23, 25, 29, 30, 37, 40}

	subset50 = []int{
		1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
		11, 12, 13, 14, 15, 16, 17, 18, 19, 20,
		21, 22, 23, 24, 25, 26, 27, 28, 29, 33,
		34, 35, 36, 37, 38, 39, 40, 42, 43, 44,
		45, 47, 48, 50, 57, 59, 62, 63, 66, 77,
	}
)
