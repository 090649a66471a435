// Package extraction 实现叙事元素启发式抽取流水线
package extraction

import (
	"strings"

	"storyverse-api/internal/domain/entity"
)

// 词表是所有抽取阶段共享的唯一来源，避免各策略间漂移。

// honorificPrefixes 称谓前缀，命中即认定为角色名
var honorificPrefixes = []string{
	"MR", "MRS", "MS", "DR", "SIR", "LADY", "LORD", "CAPTAIN",
	"PROFESSOR", "GENERAL", "SERGEANT", "DETECTIVE", "OFFICER",
	"KING", "QUEEN", "PRINCE", "PRINCESS",
}

// properNounStoplist 专有名词频次统计的排除词
var properNounStoplist = map[string]bool{
	"The": true, "I": true, "A": true,
	"Mr": true, "Mrs": true, "Ms": true, "Dr": true, "Sir": true,
}

// nonCharacterWords 全大写行中不可能是角色名的词：
// 剧本术语、冠词连词、音效词
var nonCharacterWords = map[string]bool{
	"INT": true, "EXT": true, "FADE": true, "CUT": true, "DISSOLVE": true,
	"CONTINUED": true, "CONT'D": true, "TITLE": true, "SUPER": true,
	"ANGLE": true, "CLOSE": true, "WIDE": true, "POV": true, "FLASHBACK": true,
	"MONTAGE": true, "INTERCUT": true, "LATER": true, "CONTINUOUS": true,
	"DAY": true, "NIGHT": true, "MORNING": true, "EVENING": true, "DAWN": true,
	"DUSK": true, "AFTERNOON": true,
	"THE": true, "AND": true, "OR": true, "BUT": true, "OF": true, "ON": true,
	"IN": true, "AT": true, "TO": true, "WITH": true, "FROM": true, "BY": true,
	"BANG": true, "CRASH": true, "BOOM": true, "THUD": true, "SLAM": true,
	"RING": true, "KNOCK": true, "SCREECH": true, "SILENCE": true,
	"VOICE": true, "VOICES": true, "SOUND": true, "MUSIC": true, "SFX": true,
	"END": true, "BEGIN": true, "SCENE": true, "ACT": true, "CHAPTER": true,
}

// locationWords 地点指示词，出现在候选名中则判为地点而非角色
var locationWords = map[string]bool{
	"ROOM": true, "KITCHEN": true, "BEDROOM": true, "BATHROOM": true,
	"HALLWAY": true, "OFFICE": true, "HOUSE": true, "APARTMENT": true,
	"BUILDING": true, "STREET": true, "ROAD": true, "ALLEY": true,
	"CITY": true, "TOWN": true, "VILLAGE": true, "FOREST": true, "WOODS": true,
	"MOUNTAIN": true, "RIVER": true, "LAKE": true, "OCEAN": true, "BEACH": true,
	"CASTLE": true, "PALACE": true, "TOWER": true, "DUNGEON": true,
	"SCHOOL": true, "HOSPITAL": true, "CHURCH": true, "TEMPLE": true,
	"BAR": true, "RESTAURANT": true, "CAFE": true, "SHOP": true, "STORE": true,
	"GARDEN": true, "PARK": true, "FIELD": true, "FARM": true, "BARN": true,
	"CAVE": true, "BRIDGE": true, "HARBOR": true, "STATION": true,
	"BASEMENT": true, "ATTIC": true, "ROOF": true, "GARAGE": true,
	"CORRIDOR": true, "CHAMBER": true, "HALL": true, "COURTYARD": true,
	"WAREHOUSE": true, "LABORATORY": true, "LAB": true, "SHIP": true,
	"DESERT": true, "VALLEY": true, "CLIFF": true, "SWAMP": true,
}

// objectWords 物品指示词
var objectWords = map[string]bool{
	"SWORD": true, "KNIFE": true, "GUN": true, "PISTOL": true, "RIFLE": true,
	"DAGGER": true, "AXE": true, "BOW": true, "ARROW": true, "SHIELD": true,
	"BOOK": true, "LETTER": true, "MAP": true, "SCROLL": true, "DOCUMENT": true,
	"KEY": true, "LOCK": true, "BOX": true, "CHEST": true, "BAG": true,
	"PHONE": true, "COMPUTER": true, "LAPTOP": true, "CAMERA": true,
	"CAR": true, "TRUCK": true, "MOTORCYCLE": true, "BICYCLE": true,
	"CROWN": true, "AMULET": true, "PENDANT": true, "NECKLACE": true,
	"POTION": true, "WAND": true, "STAFF": true, "ORB": true,
	"TABLE": true, "CHAIR": true, "DOOR": true, "WINDOW": true, "MIRROR": true,
	"CANDLE": true, "LANTERN": true, "TORCH": true, "ROPE": true,
	"COAT": true, "CLOAK": true, "HAT": true, "MASK": true, "GLOVE": true,
}

// actionDescriptionPhrases 已知的动作/描写性全大写短语，不是角色名
var actionDescriptionPhrases = map[string]bool{
	"DARK FIGURE":      true,
	"MYSTERIOUS VOICE": true,
	"SHADOWY FIGURE":   true,
	"HOODED FIGURE":    true,
	"OLD MAN":          true,
	"OLD WOMAN":        true,
	"YOUNG BOY":        true,
	"YOUNG GIRL":       true,
	"CROWD":            true,
	"EVERYONE":         true,
	"NO ONE":           true,
	"THE END":          true,
	"FADE IN":          true,
	"FADE OUT":         true,
	"CUT TO":           true,
	"SMASH CUT":        true,
	"MATCH CUT":        true,
}

// negativeSentimentWords 反派判定用的负面情感词
var negativeSentimentWords = []string{
	"evil", "villain", "cruel", "sinister", "menacing", "wicked",
	"threat", "threatened", "threatening", "betray", "betrayed",
	"smirk", "smirking", "sneer", "sneering", "attack", "attacked",
	"kill", "killed", "murder", "destroy", "destroyed", "steal",
	"stole", "take from", "hate", "hated", "enemy", "revenge",
}

// relationshipIndicators 关系分类关键词，按类别计数取多数
var relationshipIndicators = map[entity.RelationshipType][]string{
	entity.RelationshipFamily: {
		"father", "mother", "brother", "sister", "son", "daughter",
		"uncle", "aunt", "cousin", "grandfather", "grandmother",
		"parent", "sibling", "family",
	},
	entity.RelationshipFriend: {
		"friend", "buddy", "pal", "companion", "ally", "trusted",
		"helped", "supported", "together",
	},
	entity.RelationshipEnemy: {
		"enemy", "rival", "foe", "fought", "attacked", "hated",
		"betrayed", "against", "opposed", "killed",
	},
	entity.RelationshipRomantic: {
		"love", "loved", "kissed", "married", "romance", "romantic",
		"wife", "husband", "girlfriend", "boyfriend", "darling",
	},
	entity.RelationshipProfessional: {
		"boss", "colleague", "partner", "worked", "hired", "employee",
		"commander", "captain", "officer", "assistant",
	},
}

// locationTypeKeywords 地点类型分类关键词
var locationTypeKeywords = map[entity.LocationType][]string{
	entity.LocationCity: {
		"city", "town", "village", "metropolis", "district", "street",
	},
	entity.LocationBuilding: {
		"house", "building", "castle", "palace", "tower", "room",
		"kitchen", "office", "school", "hospital", "church", "temple",
		"bar", "restaurant", "shop", "store", "warehouse", "station",
		"hall", "chamber", "basement", "attic", "apartment", "garage",
		"lab", "laboratory",
	},
	entity.LocationNatural: {
		"forest", "woods", "mountain", "river", "lake", "ocean", "sea",
		"beach", "cave", "valley", "desert", "field", "cliff", "swamp",
		"garden", "park",
	},
	entity.LocationCountry: {
		"kingdom", "country", "nation", "empire", "province", "land",
	},
	entity.LocationRealm: {
		"realm", "dimension", "underworld", "heaven", "hell", "void",
	},
	entity.LocationPlanet: {
		"planet", "moon", "star", "galaxy", "world",
	},
}

// itemTypeKeywords 物品类型分类关键词
var itemTypeKeywords = map[entity.ItemType][]string{
	entity.ItemWeapon: {
		"sword", "knife", "gun", "pistol", "rifle", "dagger", "axe",
		"bow", "arrow", "blade", "spear",
	},
	entity.ItemTool: {
		"key", "rope", "hammer", "torch", "lantern", "compass", "tool",
	},
	entity.ItemClothing: {
		"coat", "cloak", "hat", "mask", "glove", "boot", "dress", "robe",
	},
	entity.ItemMagical: {
		"potion", "wand", "staff", "orb", "amulet", "pendant", "crystal",
		"rune", "talisman", "enchanted",
	},
	entity.ItemTechnology: {
		"phone", "computer", "laptop", "camera", "device", "machine",
		"robot", "drone",
	},
	entity.ItemDocument: {
		"book", "letter", "map", "scroll", "document", "journal", "diary",
		"note", "contract",
	},
}

// timeMarkers 事件与场景切分共用的时间提示短语
var timeMarkers = []string{
	"later", "meanwhile", "the next day", "the next morning",
	"that night", "the following day", "hours later", "days later",
	"years later", "suddenly", "moments later", "afterwards",
	"at dawn", "at dusk", "by nightfall",
}

// sceneTransitionPhrases 场景切换提示短语
var sceneTransitionPhrases = []string{
	"cut to", "fade in", "fade out", "dissolve to", "smash cut to",
	"back to", "elsewhere",
}

// locationChangePrepositions 段落内地点变化介词，用于散文场景切分
var locationChangePrepositions = []string{
	"arrived at", "entered the", "walked into", "stepped into",
	"returned to", "left the", "went to", "reached the",
}

// emotionalOutburstVerbs 情绪爆发动词，作为事件线索
var emotionalOutburstVerbs = []string{
	"screamed", "shouted", "cried", "sobbed", "wept", "roared",
	"laughed", "gasped", "wailed",
}

// strongActionVerbs 强动作动词，作为事件线索
var strongActionVerbs = []string{
	"attacked", "escaped", "discovered", "revealed", "betrayed",
	"killed", "died", "fought", "destroyed", "rescued", "captured",
	"arrived", "departed", "confronted", "defeated", "stole", "fled",
}

// descriptiveVerbs 角色描写动词
var descriptiveVerbs = []string{
	"is", "was", "appears", "appeared", "seems", "seemed",
	"looks", "looked", "stands", "stood", "remains", "remained",
}

// characterActionVerbs 角色意图动词
var characterActionVerbs = []string{
	"wants", "wanted", "fights", "fought", "discovers", "discovered",
	"seeks", "sought", "loves", "loved", "hates", "hated",
	"fears", "feared", "struggles", "struggled", "decides", "decided",
}

// hasHonorificPrefix 判断名称是否以称谓前缀开头
func hasHonorificPrefix(name string) bool {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for _, prefix := range honorificPrefixes {
		if upper == prefix || strings.HasPrefix(upper, prefix+" ") ||
			strings.HasPrefix(upper, prefix+".") {
			return true
		}
	}
	return false
}

// containsStopWord 判断候选名的任一单词是否命中给定词表
func containsStopWord(name string, table map[string]bool) bool {
	for _, word := range strings.Fields(strings.ToUpper(name)) {
		word = strings.Trim(word, ".,:;!?'\"")
		if table[word] {
			return true
		}
	}
	return false
}

// classifyByKeywords 在类别关键词表中找包含次数最多的类别，
// 零命中或并列时返回 fallback
func classifyByKeywords[T comparable](text string, table map[T][]string, fallback T) T {
	lower := strings.ToLower(text)
	best := fallback
	bestHits := 0
	tied := false
	for category, keywords := range table {
		hits := 0
		for _, kw := range keywords {
			hits += strings.Count(lower, kw)
		}
		switch {
		case hits > bestHits:
			bestHits = hits
			best = category
			tied = false
		case hits == bestHits && hits > 0:
			tied = true
		}
	}
	if bestHits == 0 || tied {
		return fallback
	}
	return best
}
