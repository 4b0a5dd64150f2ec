package raw

// Scalar types matching the OpenCL C ABI. The Go types below have the
// same size and representation as their cl_* counterparts on every
// platform OpenCL supports.
type (
	// Int is cl_int, the status-code and signed scalar type.
	Int = int32

	// Uint is cl_uint.
	Uint = uint32

	// Ulong is cl_ulong.
	Ulong = uint64

	// Size is size_t.
	Size = uintptr

	// Bool is cl_bool. OpenCL booleans are cl_uint with values
	// False/True.
	Bool = uint32

	// Bitfield is cl_bitfield, the base of all flag types.
	Bitfield = uint64
)

// Opaque handle types. Each wraps the native pointer value of one
// object kind; they are distinct types so handles of different kinds
// cannot be confused at call sites.
type (
	PlatformID   uintptr
	DeviceID     uintptr
	Context      uintptr
	CommandQueue uintptr
	Program      uintptr
	Kernel       uintptr
	Mem          uintptr
	Event        uintptr
)

// Flag and enum types.
type (
	DeviceTypeFlags  = Bitfield
	MemFlags         = Bitfield
	QueueProperties  = Bitfield
	ContextProperty  = uintptr
	PlatformInfo     = Uint
	DeviceInfo       = Uint
	ContextInfo      = Uint
	QueueInfo        = Uint
	ProgramInfo      = Uint
	ProgramBuildInfo = Uint
	KernelInfo       = Uint
	KernelArgInfo    = Uint
	MemInfo          = Uint
	EventInfo        = Uint
	ProfilingInfo    = Uint
)

// Boolean values.
const (
	False Bool = 0
	True  Bool = 1
)

// Device type flags for clGetDeviceIDs.
const (
	DeviceTypeDefault     DeviceTypeFlags = 1 << 0
	DeviceTypeCPU         DeviceTypeFlags = 1 << 1
	DeviceTypeGPU         DeviceTypeFlags = 1 << 2
	DeviceTypeAccelerator DeviceTypeFlags = 1 << 3
	DeviceTypeCustom      DeviceTypeFlags = 1 << 4
	DeviceTypeAll         DeviceTypeFlags = 0xFFFFFFFF
)

// Memory object flags for clCreateBuffer.
const (
	MemReadWrite     MemFlags = 1 << 0
	MemWriteOnly     MemFlags = 1 << 1
	MemReadOnly      MemFlags = 1 << 2
	MemUseHostPtr    MemFlags = 1 << 3
	MemAllocHostPtr  MemFlags = 1 << 4
	MemCopyHostPtr   MemFlags = 1 << 5
	MemHostWriteOnly MemFlags = 1 << 7
	MemHostReadOnly  MemFlags = 1 << 8
	MemHostNoAccess  MemFlags = 1 << 9
)

// Command queue properties.
const (
	QueueOutOfOrderExecModeEnable QueueProperties = 1 << 0
	QueueProfilingEnable          QueueProperties = 1 << 1
	QueueOnDevice                 QueueProperties = 1 << 2
	QueueOnDeviceDefault          QueueProperties = 1 << 3
)

// Context properties.
const (
	ContextPlatform ContextProperty = 0x1084
)

// clGetPlatformInfo parameter names.
const (
	PlatformProfile    PlatformInfo = 0x0900
	PlatformVersion    PlatformInfo = 0x0901
	PlatformName       PlatformInfo = 0x0902
	PlatformVendor     PlatformInfo = 0x0903
	PlatformExtensions PlatformInfo = 0x0904
)

// clGetDeviceInfo parameter names (the subset the safe layer queries).
const (
	DeviceTypeInfo            DeviceInfo = 0x1000
	DeviceVendorID            DeviceInfo = 0x1001
	DeviceMaxComputeUnits     DeviceInfo = 0x1002
	DeviceMaxWorkGroupSize    DeviceInfo = 0x1004
	DeviceGlobalMemSize       DeviceInfo = 0x101F
	DeviceLocalMemSize        DeviceInfo = 0x1023
	DeviceAvailable           DeviceInfo = 0x1027
	DeviceName                DeviceInfo = 0x102B
	DeviceVendor              DeviceInfo = 0x102C
	DeviceVersionInfo         DeviceInfo = 0x102F
	DeviceExtensions          DeviceInfo = 0x1030
	DeviceMaxMemAllocSize     DeviceInfo = 0x1010
	DeviceMaxWorkItemDims     DeviceInfo = 0x1003
	DeviceDriverVersion       DeviceInfo = 0x102D
	DeviceOpenCLCVersion      DeviceInfo = 0x103D
	DeviceAddressBits         DeviceInfo = 0x100D
	DeviceMaxClockFrequency   DeviceInfo = 0x100C
	DeviceProfileInfo         DeviceInfo = 0x102E
	DeviceMaxConstantBufSize  DeviceInfo = 0x1020
	DeviceMaxParameterSize    DeviceInfo = 0x1017
	DeviceQueueProperties     DeviceInfo = 0x102A
	DevicePlatformOfDevice    DeviceInfo = 0x1031
	DeviceImageSupport        DeviceInfo = 0x1016
	DeviceErrorCorrection     DeviceInfo = 0x1024
	DeviceProfilingTimerRes   DeviceInfo = 0x1025
	DeviceEndianLittle        DeviceInfo = 0x1026
	DeviceCompilerAvailable   DeviceInfo = 0x1028
	DeviceExecCapabilities    DeviceInfo = 0x1029
	DeviceGlobalMemCacheSize  DeviceInfo = 0x101E
	DeviceGlobalMemCacheline  DeviceInfo = 0x101D
	DeviceMaxWorkItemSizes    DeviceInfo = 0x1005
	DevicePreferredVectorInt  DeviceInfo = 0x1008
	DeviceSingleFPConfig      DeviceInfo = 0x101B
	DeviceHostUnifiedMemory   DeviceInfo = 0x1035
	DevicePartitionMaxSubDevs DeviceInfo = 0x1043
)

// clGetContextInfo parameter names.
const (
	ContextReferenceCount ContextInfo = 0x1080
	ContextDevices        ContextInfo = 0x1081
	ContextProperties     ContextInfo = 0x1082
	ContextNumDevices     ContextInfo = 0x1083
)

// clGetCommandQueueInfo parameter names.
const (
	QueueContextInfo        QueueInfo = 0x1090
	QueueDeviceInfo         QueueInfo = 0x1091
	QueueReferenceCount     QueueInfo = 0x1092
	QueuePropertiesInfo     QueueInfo = 0x1093
	QueuePropertiesListInfo QueueInfo = 0x1098
)

// clGetProgramInfo / clGetProgramBuildInfo parameter names.
const (
	ProgramReferenceCount ProgramInfo = 0x1160
	ProgramContextInfo    ProgramInfo = 0x1161
	ProgramNumDevices     ProgramInfo = 0x1162
	ProgramDevices        ProgramInfo = 0x1163
	ProgramSource         ProgramInfo = 0x1164
	ProgramBinarySizes    ProgramInfo = 0x1165
	ProgramNumKernels     ProgramInfo = 0x1167
	ProgramKernelNames    ProgramInfo = 0x1168

	ProgramBuildStatus  ProgramBuildInfo = 0x1181
	ProgramBuildOptions ProgramBuildInfo = 0x1182
	ProgramBuildLog     ProgramBuildInfo = 0x1183
)

// Program build status values.
const (
	BuildSuccess    Int = 0
	BuildNone       Int = -1
	BuildError      Int = -2
	BuildInProgress Int = -3
)

// clGetKernelInfo / clGetKernelArgInfo parameter names.
const (
	KernelFunctionName   KernelInfo = 0x1190
	KernelNumArgs        KernelInfo = 0x1191
	KernelReferenceCount KernelInfo = 0x1192
	KernelContextInfo    KernelInfo = 0x1193
	KernelProgramInfo    KernelInfo = 0x1194

	KernelArgAddressQualifier KernelArgInfo = 0x1196
	KernelArgAccessQualifier  KernelArgInfo = 0x1197
	KernelArgTypeName         KernelArgInfo = 0x1198
	KernelArgTypeQualifier    KernelArgInfo = 0x1199
	KernelArgName             KernelArgInfo = 0x119A
)

// clGetMemObjectInfo parameter names.
const (
	MemTypeInfo        MemInfo = 0x1100
	MemFlagsInfo       MemInfo = 0x1101
	MemSizeInfo        MemInfo = 0x1102
	MemHostPtrInfo     MemInfo = 0x1103
	MemMapCount        MemInfo = 0x1104
	MemReferenceCount  MemInfo = 0x1105
	MemContextInfo     MemInfo = 0x1106
	MemAssociatedMem   MemInfo = 0x1107
	MemOffsetInfo      MemInfo = 0x1108
	MemUsesSVMPointer  MemInfo = 0x1109
)

// clGetEventInfo parameter names and execution status values.
const (
	EventCommandQueueInfo    EventInfo = 0x11D0
	EventCommandType         EventInfo = 0x11D1
	EventReferenceCount      EventInfo = 0x11D2
	EventCommandExecStatus   EventInfo = 0x11D3
	EventContextInfo         EventInfo = 0x11D4
	ProfilingCommandQueued   ProfilingInfo = 0x1280
	ProfilingCommandSubmit   ProfilingInfo = 0x1281
	ProfilingCommandStart    ProfilingInfo = 0x1282
	ProfilingCommandEnd      ProfilingInfo = 0x1283
	ProfilingCommandComplete ProfilingInfo = 0x1284
)

// Event execution status values returned for EventCommandExecStatus.
const (
	Complete  Int = 0x0
	Running   Int = 0x1
	Submitted Int = 0x2
	Queued    Int = 0x3
)
