package config

type WorkerKeyStruct struct {
	RefreshTermsQueue string
}

var WorkerKey = &WorkerKeyStruct{
	RefreshTermsQueue: "refresh_terms_queue",
}
