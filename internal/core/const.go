package core

const (
	BucketNamePolls    = "polls"
	BucketNameSettings = "settings"

	PollsStreamName = "polls"

	SettingKeyElectronicVoting = "enable_electronic_voting"
)
