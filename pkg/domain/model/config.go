package model

// PublishConfig holds everything a publish run needs. Values are injected by the caller.
type PublishConfig struct {
	Owner       string
	Repo        string
	Tag         string
	AssetDir    string
	Concurrency int // 0 means unbounded
}
