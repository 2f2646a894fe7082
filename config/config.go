package config

import (
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/viper"
)

type Config struct {
	MinIOBucket string        `yaml:"minio_bucket"`
	App         App           `yaml:"app"`
	Mongo       Mongo         `yaml:"mongo"`
	Videos      Videos        `yaml:"videos"`
	Storage     *minio.Client `yaml:"storage"`
	Server      Server        `yaml:"server"`
}

type App struct {
	Environment string `yaml:"environment"`
	Host        string `yaml:"host"`
	Protocol    string `yaml:"protocol"`
}

type Server struct {
	HttpPort string `yaml:"http_port"`
}

type Mongo struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type Videos struct {
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir"`
	BaseURL string `yaml:"base_url"`
}

func Load(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	viper.SetDefault("mongo.database", "emogo_db")
	viper.SetDefault("videos.backend", "local")
	viper.SetDefault("videos.dir", "videos")

	cfg := &Config{
		App: App{
			Environment: viper.GetString("app.environment"),
			Host:        viper.GetString("app.host"),
			Protocol:    viper.GetString("app.protocol"),
		},
		Server: Server{
			HttpPort: viper.GetString("server.port"),
		},
		Mongo: Mongo{
			URI:      viper.GetString("mongo.uri"),
			Database: viper.GetString("mongo.database"),
		},
		Videos: Videos{
			Backend: viper.GetString("videos.backend"),
			Dir:     viper.GetString("videos.dir"),
			BaseURL: viper.GetString("videos.base_url"),
		},
	}

	if cfg.Videos.Backend == "minio" {
		minioClient, err := minio.New(viper.GetString("minio.url"), &minio.Options{
			Creds:  credentials.NewStaticV4(viper.GetString("minio.access_id"), viper.GetString("minio.secret_access_key"), ""),
			Secure: false,
		})
		if err != nil {
			return nil, err
		}
		cfg.Storage = minioClient
		cfg.MinIOBucket = viper.GetString("minio.bucket")
	}

	return cfg, nil
}
