package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Loader --dir ../infrastructure/pages --output infrastructure/pages --outpkg pagesmock --filename loader_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Parser --dir ../domain/source --output domain/source --outpkg sourcemock --filename parser_mock.go
