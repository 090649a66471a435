package extraction

// Profile 一组抽取置信度参数。
// 两套档位来源于历史上并行的两条流水线，刻度并不一致，
// 因此保留为命名档位而不强行统一。
type Profile struct {
	Name string

	// 剧本提示行策略
	CueBase float64
	CueStep float64
	CueCap  float64

	// 对话归属策略
	DialogueBase float64
	DialogueStep float64
	DialogueCap  float64

	// 专有名词频次策略
	FrequencyConfidence float64

	// 各实体类型的固定置信度
	LocationConfidence float64
	ItemConfidence     float64
	EventConfidence    float64
	PlotlineConfidence float64

	// 低于此值的角色候选直接丢弃；0 表示不丢弃
	DiscardFloor float64

	// 事件序号步进
	EventSequenceStep int
}

// ServerProfile 默认档位：带 0.5 丢弃下限，事件序号连续
func ServerProfile() Profile {
	return Profile{
		Name:                "server",
		CueBase:             0.8,
		CueStep:             0.05,
		CueCap:              0.95,
		DialogueBase:        0.7,
		DialogueStep:        0.05,
		DialogueCap:         0.9,
		FrequencyConfidence: 0.6,
		LocationConfidence:  0.7,
		ItemConfidence:      0.6,
		EventConfidence:     0.65,
		PlotlineConfidence:  0.6,
		DiscardFloor:        0.5,
		EventSequenceStep:   1,
	}
}

// ClientProfile 兼容档位：无丢弃下限，事件序号以 10 为步进
func ClientProfile() Profile {
	return Profile{
		Name:                "client",
		CueBase:             0.8,
		CueStep:             0.05,
		CueCap:              0.95,
		DialogueBase:        0.7,
		DialogueStep:        0.05,
		DialogueCap:         0.9,
		FrequencyConfidence: 0.6,
		LocationConfidence:  0.6,
		ItemConfidence:      0.55,
		EventConfidence:     0.6,
		PlotlineConfidence:  0.55,
		DiscardFloor:        0,
		EventSequenceStep:   10,
	}
}

// ProfileByName 按配置名取档位，未知名称回退到 server
func ProfileByName(name string) Profile {
	if name == "client" {
		return ClientProfile()
	}
	return ServerProfile()
}

// CharacterOverride 可注入的角色固定数据，
// 用于把示例性的硬编码查表从启发式核心中剥离
type CharacterOverride struct {
	Role        string
	Logline     string
	Description string
}

// Options 单次抽取的开关集合
type Options struct {
	ExtractCharacters    bool
	ExtractLocations     bool
	ExtractItems         bool
	ExtractEvents        bool
	ExtractScenes        bool
	ExtractPlotlines     bool
	ExtractRelationships bool
	ExtractDependencies  bool
	ExtractArcs          bool

	// 覆盖档位默认下限；<=0 表示沿用档位
	ConfidenceThreshold float64
}

// DefaultOptions 全开
func DefaultOptions() Options {
	return Options{
		ExtractCharacters:    true,
		ExtractLocations:     true,
		ExtractItems:         true,
		ExtractEvents:        true,
		ExtractScenes:        true,
		ExtractPlotlines:     true,
		ExtractRelationships: true,
		ExtractDependencies:  true,
		ExtractArcs:          true,
	}
}

// floor 实际生效的角色丢弃下限
func (o Options) floor(p Profile) float64 {
	if o.ConfidenceThreshold > 0 {
		return o.ConfidenceThreshold
	}
	return p.DiscardFloor
}
