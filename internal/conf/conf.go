package conf

import "time"

// Bootstrap 配置文件根节点（configs/config.yaml）
type Bootstrap struct {
	Server *Server `json:"server"`
	Data   *Data   `json:"data"`
	Verify *Verify `json:"verify"`
}

func (x *Bootstrap) GetServer() *Server {
	if x != nil {
		return x.Server
	}
	return nil
}

func (x *Bootstrap) GetData() *Data {
	if x != nil {
		return x.Data
	}
	return nil
}

func (x *Bootstrap) GetVerify() *Verify {
	if x != nil {
		return x.Verify
	}
	return nil
}

// Server 对外接口（HTTP 查询 + gRPC 健康检查）
type Server struct {
	Http *Server_HTTP `json:"http"`
	Grpc *Server_GRPC `json:"grpc"`
}

type Server_HTTP struct {
	Network string `json:"network"`
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"` // time.ParseDuration 格式，如 "5s"
}

type Server_GRPC struct {
	Network string `json:"network"`
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

func (x *Server) GetHttp() *Server_HTTP {
	if x != nil {
		return x.Http
	}
	return nil
}

func (x *Server) GetGrpc() *Server_GRPC {
	if x != nil {
		return x.Grpc
	}
	return nil
}

func (x *Server_HTTP) GetAddr() string {
	if x != nil {
		return x.Addr
	}
	return ""
}

func (x *Server_HTTP) GetNetwork() string {
	if x != nil {
		return x.Network
	}
	return ""
}

func (x *Server_HTTP) GetTimeout() time.Duration {
	if x != nil {
		return parseDuration(x.Timeout)
	}
	return 0
}

func (x *Server_GRPC) GetAddr() string {
	if x != nil {
		return x.Addr
	}
	return ""
}

func (x *Server_GRPC) GetNetwork() string {
	if x != nil {
		return x.Network
	}
	return ""
}

func (x *Server_GRPC) GetTimeout() time.Duration {
	if x != nil {
		return parseDuration(x.Timeout)
	}
	return 0
}

// Data 外部存储，全部可选：未配置时对应仓储退化为内存/空实现
type Data struct {
	Database *Data_Database `json:"database"`
	Redis    *Data_Redis    `json:"redis"`
	Rabbitmq *Data_RabbitMQ `json:"rabbitmq"`
}

type Data_Database struct {
	Driver string `json:"driver"`
	Source string `json:"source"`
}

type Data_Redis struct {
	Addr         string `json:"addr"`
	Password     string `json:"password"`
	Db           int32  `json:"db"`
	ReadTimeout  string `json:"read_timeout"`
	WriteTimeout string `json:"write_timeout"`
}

type Data_RabbitMQ struct {
	Url      string `json:"url"`
	Exchange string `json:"exchange"`
	Queue    string `json:"queue"`
}

func (x *Data) GetDatabase() *Data_Database {
	if x != nil {
		return x.Database
	}
	return nil
}

func (x *Data) GetRedis() *Data_Redis {
	if x != nil {
		return x.Redis
	}
	return nil
}

func (x *Data) GetRabbitmq() *Data_RabbitMQ {
	if x != nil {
		return x.Rabbitmq
	}
	return nil
}

func (x *Data_Database) GetSource() string {
	if x != nil {
		return x.Source
	}
	return ""
}

func (x *Data_Redis) GetAddr() string {
	if x != nil {
		return x.Addr
	}
	return ""
}

func (x *Data_Redis) GetPassword() string {
	if x != nil {
		return x.Password
	}
	return ""
}

func (x *Data_Redis) GetDb() int32 {
	if x != nil {
		return x.Db
	}
	return 0
}

func (x *Data_Redis) GetReadTimeout() time.Duration {
	if x != nil {
		return parseDuration(x.ReadTimeout)
	}
	return 0
}

func (x *Data_Redis) GetWriteTimeout() time.Duration {
	if x != nil {
		return parseDuration(x.WriteTimeout)
	}
	return 0
}

func (x *Data_RabbitMQ) GetUrl() string {
	if x != nil {
		return x.Url
	}
	return ""
}

func (x *Data_RabbitMQ) GetExchange() string {
	if x != nil {
		return x.Exchange
	}
	return ""
}

func (x *Data_RabbitMQ) GetQueue() string {
	if x != nil {
		return x.Queue
	}
	return ""
}

// Verify 参考序列校验任务
type Verify struct {
	Iterations      uint64         `json:"iterations"`          // 默认 1e9
	Parallelism     int            `json:"parallelism"`         // 默认 GOMAXPROCS
	CheckpointEvery int64          `json:"checkpoint_every"`    // 0 取默认 1e8，负数表示不存断点
	SyncMaxIter     uint64         `json:"sync_max_iterations"` // 同步接口允许的最大步数，默认 1e8
	Seed            uint64         `json:"seed"`                // 0 表示全 1 参考种子
	Variants        []string       `json:"variants"`            // 为空表示全部
	Stream          *Verify_Stream `json:"stream"`
}

// Verify_Stream Redis Stream 任务队列
type Verify_Stream struct {
	Key   string `json:"key"`
	Group string `json:"group"`
	Block string `json:"block"`
}

func (x *Verify) GetIterations() uint64 {
	if x != nil {
		return x.Iterations
	}
	return 0
}

func (x *Verify) GetParallelism() int {
	if x != nil {
		return x.Parallelism
	}
	return 0
}

func (x *Verify) GetCheckpointEvery() int64 {
	if x != nil {
		return x.CheckpointEvery
	}
	return 0
}

func (x *Verify) GetSyncMaxIter() uint64 {
	if x != nil {
		return x.SyncMaxIter
	}
	return 0
}

func (x *Verify) GetSeed() uint64 {
	if x != nil {
		return x.Seed
	}
	return 0
}

func (x *Verify) GetVariants() []string {
	if x != nil {
		return x.Variants
	}
	return nil
}

func (x *Verify) GetStream() *Verify_Stream {
	if x != nil {
		return x.Stream
	}
	return nil
}

func (x *Verify_Stream) GetKey() string {
	if x != nil && x.Key != "" {
		return x.Key
	}
	return "stream:well:verify"
}

func (x *Verify_Stream) GetGroup() string {
	if x != nil && x.Group != "" {
		return x.Group
	}
	return "wellverify"
}

func (x *Verify_Stream) GetBlock() time.Duration {
	if x != nil {
		if d := parseDuration(x.Block); d > 0 {
			return d
		}
	}
	return 2 * time.Second
}

func parseDuration(s string) time.Duration {
	if s == "" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}
